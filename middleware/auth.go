package middleware

import (
	"context"
	"encoding/json"
	"goal-tracker/db"
	"log"
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookie = "session"

func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	return []byte(secret)
}

// writeError mirrors the handlers' JSON error shape; the middleware cannot
// import the handlers package without a cycle.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// RequireAuth gates protected routes. The cookie token is verified, then the
// session row it names is re-checked against the database on every request —
// a logged-out or expired session fails even if the token itself is valid.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (any, error) {
			return getJWTSecret(), nil
		})
		if err != nil {
			log.Printf("Auth Middleware - Token parsing error: %v\n", err)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		sessionID, ok := claims["session_id"].(string)
		if !ok {
			log.Printf("Auth Middleware - Missing or invalid session_id in claims")
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		tokenUserID, ok := claims["user_id"].(float64) // JWT numbers are float64 by default
		if !ok {
			log.Printf("Auth Middleware - Missing or invalid user_id in claims")
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		var userID int
		err = db.DB.QueryRow("SELECT user_id FROM sessions WHERE id = ? AND expires_at > NOW()", sessionID).Scan(&userID)
		if err != nil || userID != int(tokenUserID) {
			writeError(w, http.StatusUnauthorized, "Session expired")
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), "userID", userID))
		next.ServeHTTP(w, r)
	})
}
