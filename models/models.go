package models

import "time"

type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Goal struct {
	ID           int        `json:"id"`
	UserID       int        `json:"user_id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Percent      float64    `json:"percent"`
	Deadline     *time.Time `json:"deadline"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Plans        []Plan     `json:"plans"`
	Tips         []Tip      `json:"tips"`
}

type Plan struct {
	ID        int       `json:"id"`
	GoalID    int       `json:"goal_id"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type Tip struct {
	ID        int       `json:"id"`
	GoalID    int       `json:"goal_id"`
	Advice    string    `json:"advice"`
	Source    *string   `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
