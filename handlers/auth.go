package handlers

import (
	"database/sql"
	"encoding/json"
	"goal-tracker/db"
	"goal-tracker/models"
	"net/http"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionCookie  = "session"
	sessionTTL     = 24 * time.Hour
	minPasswordLen = 8
)

type Claims struct {
	SessionID string `json:"session_id"`
	UserID    int    `json:"user_id"`
	jwt.RegisteredClaims
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func getJWTSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// createSession inserts a session row and mirrors it into a signed HttpOnly
// cookie. The row is the source of truth; the cookie only carries its id.
func createSession(w http.ResponseWriter, userID int) error {
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	_, err := db.DB.Exec("INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)", sess.ID, sess.UserID, sess.ExpiresAt)
	if err != nil {
		return err
	}

	claims := Claims{
		SessionID: sess.ID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(getJWTSecret())
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionFromRequest resolves the cookie back to a live session row. A valid
// token whose row is gone or expired counts as no session.
func sessionFromRequest(r *http.Request) (*Claims, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		return getJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	var userID int
	err = db.DB.QueryRow("SELECT user_id FROM sessions WHERE id = ? AND expires_at > NOW()", claims.SessionID).Scan(&userID)
	if err != nil || userID != claims.UserID {
		return nil, false
	}
	return claims, true
}

func loadUser(userID int) (*models.User, error) {
	var user models.User
	err := db.DB.QueryRow("SELECT id, email, username, created_at, last_login FROM users WHERE id = ?", userID).
		Scan(&user.ID, &user.Email, &user.Username, &user.CreatedAt, &user.LastLogin)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	var existingID int
	err := db.DB.QueryRow("SELECT id FROM users WHERE email = ?", req.Email).Scan(&existingID)
	if err == nil {
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	}
	if err != sql.ErrNoRows {
		writeError(w, http.StatusInternalServerError, "Could not create user")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create user")
		return
	}

	res, err := db.DB.Exec("INSERT INTO users (email, username, password_hash) VALUES (?, ?, ?)", req.Email, req.Username, hash)
	if err != nil {
		// Unique constraint on username lands here.
		writeError(w, http.StatusBadRequest, "Email or username already exists")
		return
	}
	lastID, _ := res.LastInsertId()

	// Signup logs the user in immediately.
	if err := createSession(w, int(lastID)); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create session")
		return
	}

	user, err := loadUser(int(lastID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var userID int
	var passwordHash string
	err := db.DB.QueryRow("SELECT id, password_hash FROM users WHERE email = ?", req.Email).Scan(&userID, &passwordHash)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	db.DB.Exec("UPDATE users SET last_login = NOW() WHERE id = ?", userID)

	if err := createSession(w, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create session")
		return
	}

	user, err := loadUser(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout destroys the session row if one is referenced; calling it without a
// session is not an error.
func Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
			return getJWTSecret(), nil
		})
		if err == nil && token.Valid {
			db.DB.Exec("DELETE FROM sessions WHERE id = ?", claims.SessionID)
		}
	}
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me reports the current user, or null when no live session exists. It never
// fails: the cookie is advisory and is checked against the sessions table on
// every call.
func Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := sessionFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	user, err := loadUser(claims.UserID)
	if err != nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
