package db

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

func ConnectDB() {
	var err error
	// DSN must include parseTime=true so DATETIME columns scan into time.Time
	dsn := os.Getenv("DSN")
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal("DB connection error:", err)
	}

	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		username VARCHAR(50) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_login DATETIME NULL
	);`

	sessionsTable := `
	CREATE TABLE IF NOT EXISTS sessions (
		id CHAR(36) PRIMARY KEY,
		user_id INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	goalsTable := `
	CREATE TABLE IF NOT EXISTS goals (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		title VARCHAR(100) NOT NULL,
		description TEXT,
		target_value DOUBLE NOT NULL,
		current_value DOUBLE NOT NULL DEFAULT 0,
		deadline DATETIME NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	plansTable := `
	CREATE TABLE IF NOT EXISTS plans (
		id INT AUTO_INCREMENT PRIMARY KEY,
		goal_id INT NOT NULL,
		content TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (goal_id) REFERENCES goals(id) ON DELETE CASCADE
	);`

	tipsTable := `
	CREATE TABLE IF NOT EXISTS tips (
		id INT AUTO_INCREMENT PRIMARY KEY,
		goal_id INT NOT NULL,
		advice TEXT NOT NULL,
		source VARCHAR(200) NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (goal_id) REFERENCES goals(id) ON DELETE CASCADE
	);`

	for _, table := range []string{usersTable, sessionsTable, goalsTable, plansTable, tipsTable} {
		_, err = DB.Exec(table)
		if err != nil {
			log.Fatal("Error creating table:", err)
		}
	}
}
