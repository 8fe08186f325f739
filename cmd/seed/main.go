package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mindstack/mindstack/config"
	"github.com/mindstack/mindstack/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@mindstack.dev"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, avatar_url)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	thoughts := []string{
		"Shipping beats perfection.",
		"Reread the chapter on indexes before the next migration.",
	}
	for _, content := range thoughts {
		if _, err := db.Exec(`INSERT INTO thoughts (user_id, content) VALUES ($1, $2)`, userID, content); err != nil {
			log.Fatalf("failed to seed thought: %v", err)
		}
	}
	fmt.Printf("seeded %d thoughts\n", len(thoughts))

	due := time.Now().AddDate(0, 0, 3)
	if _, err := db.Exec(`
		INSERT INTO todos (user_id, title, description, due_date)
		VALUES ($1, 'Review pull requests', 'At least the two oldest ones', $2),
		       ($1, 'Water the plants', NULL, NULL)
	`, userID, due); err != nil {
		log.Fatalf("failed to seed todos: %v", err)
	}
	fmt.Println("seeded 2 todos")

	var habitID string
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if err := db.QueryRow(`
		INSERT INTO habits (user_id, title, description, frequency, start_date, due_time)
		VALUES ($1, 'Morning run', '30 minutes around the park', 'daily', $2, '07:00')
		RETURNING id
	`, userID, today).Scan(&habitID); err != nil {
		log.Fatalf("failed to seed habit: %v", err)
	}
	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, i)
		if _, err := db.Exec(`
			INSERT INTO habit_instances (habit_id, user_id, due_date)
			VALUES ($1, $2, $3)
			ON CONFLICT (habit_id, due_date) DO NOTHING
		`, habitID, userID, d); err != nil {
			log.Fatalf("failed to seed habit instance: %v", err)
		}
	}
	fmt.Println("seeded 1 habit with a week of instances")
}
