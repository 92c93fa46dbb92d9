package main

import (
	"goal-tracker/db"
	"goal-tracker/handlers"
	appmw "goal-tracker/middleware"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {

	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db.ConnectDB()
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/login", handlers.Login)
	r.Post("/api/auth/logout", handlers.Logout)
	r.Get("/api/auth/me", handlers.Me)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth)
		r.Get("/api/goals", handlers.GetGoals)
		r.Post("/api/goals", handlers.CreateGoal)
		r.Get("/api/goals/{id}", handlers.GetGoal)
		r.Put("/api/goals/{id}", handlers.UpdateGoal)
		r.Delete("/api/goals/{id}", handlers.DeleteGoal)
		r.Patch("/api/goals/{id}/progress", handlers.UpdateProgress)
		r.Get("/api/goals/{id}/plans", handlers.GetPlans)
		r.Post("/api/goals/{id}/plans", handlers.CreatePlan)
		r.Put("/api/plans/{id}", handlers.UpdatePlan)
		r.Delete("/api/plans/{id}", handlers.DeletePlan)
		r.Get("/api/goals/{id}/tips", handlers.GetTips)
		r.Post("/api/goals/{id}/tips", handlers.CreateTip)
		r.Put("/api/tips/{id}", handlers.UpdateTip)
		r.Delete("/api/tips/{id}", handlers.DeleteTip)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3002"
	}

	log.Println("Server running on http://localhost:" + port)
	http.ListenAndServe(":"+port, r)
}
