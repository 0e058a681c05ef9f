package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/coslynx/fitness-tracker/config"
	"github.com/coslynx/fitness-tracker/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@fitness.local"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (id, email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4, '')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, uuid.NewString(), email, hash, name).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	goals := []struct {
		title, description string
		target             float64
		deadline           time.Time
	}{
		{"Lose 5 kg", "Steady cut over the quarter", 5, time.Now().AddDate(0, 3, 0)},
		{"Run 100 km", "Total monthly distance", 100, time.Now().AddDate(0, 1, 0)},
	}
	for _, g := range goals {
		if _, err := db.Exec(`
			INSERT INTO goals (id, title, description, target, deadline, user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), g.title, g.description, g.target, g.deadline, userID); err != nil {
			log.Fatalf("failed to seed goal %q: %v", g.title, err)
		}
	}

	workouts := []struct {
		wtype     string
		duration  int
		intensity string
		calories  int
		date      time.Time
	}{
		{"running", 45, "high", 520, time.Now().AddDate(0, 0, -2)},
		{"yoga", 30, "low", 120, time.Now().AddDate(0, 0, -1)},
	}
	for _, w := range workouts {
		if _, err := db.Exec(`
			INSERT INTO workouts (id, type, duration, intensity, calories_burned, date, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.NewString(), w.wtype, w.duration, w.intensity, w.calories, w.date, userID); err != nil {
			log.Fatalf("failed to seed workout %q: %v", w.wtype, err)
		}
	}

	fmt.Println("seeded sample goals and workouts")
}
