package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oceantrail/divelog-api/config"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@divelog.dev"
	password := "password123"
	username := "demoDiver"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (id, email, username, first_name, last_name, bio, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, uuid.NewString(), email, username, "Demo", "Diver", "Here for the reef.", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", userID, email, username, password)

	// A few well-known sites so the API has something to log dives against
	spots := []struct {
		name, description string
		lat, lon          float64
		maxDepthM         float64
	}{
		{"USAT Liberty Wreck", "Shore-entry WWII wreck at Tulamben, Bali.", -8.2744, 115.5931, 30},
		{"Crystal Bay", "Mola mola cleaning station off Nusa Penida.", -8.7165, 115.4585, 40},
		{"Cape Kri", "Record-holding reef in Raja Ampat's Dampier Strait.", -0.5561, 130.6900, 40},
	}
	for _, s := range spots {
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM diving_spots WHERE name = $1)`, s.name).Scan(&exists); err != nil {
			log.Fatalf("failed to check spot %q: %v", s.name, err)
		}
		if exists {
			continue
		}
		var spotID string
		err = db.QueryRow(`
			INSERT INTO diving_spots (id, name, description, latitude, longitude, max_depth_value, max_depth_unit, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, 'm', $7)
			RETURNING id
		`, uuid.NewString(), s.name, s.description, s.lat, s.lon, s.maxDepthM, userID).Scan(&spotID)
		if err != nil {
			log.Fatalf("failed to seed spot %q: %v", s.name, err)
		}
		fmt.Printf("seeded spot: id=%s name=%s\n", spotID, s.name)
	}

	// Base achievement catalog
	achievements := []struct {
		title, description, typ, category string
		points                            int
		requiredValue                     *int
		isSecret                          bool
	}{
		{"First Splash", "Log your first dive.", "milestone", "diving", 10, nil, false},
		{"Deep Diver", "Log a dive past 30 meters.", "milestone", "diving", 25, nil, false},
		{"Frequent Bubbler", "Log 50 dives.", "progressive", "diving", 50, intp(50), false},
		{"Cartographer", "Add 10 diving spots.", "progressive", "exploration", 40, intp(10), false},
		{"Social Butterfly", "Join 5 community events.", "progressive", "community", 30, intp(5), false},
		{"Nitrox Certified", "Log your first nitrox dive.", "milestone", "training", 20, nil, false},
		{"Night Owl", "Log a dive that starts after sunset.", "milestone", "diving", 15, nil, true},
	}
	for _, a := range achievements {
		var achievementID string
		err = db.QueryRow(`
			INSERT INTO achievements (id, title, description, type, category, points, required_value, is_secret)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (title) DO UPDATE SET description = EXCLUDED.description
			RETURNING id
		`, uuid.NewString(), a.title, a.description, a.typ, a.category, a.points, a.requiredValue, a.isSecret).Scan(&achievementID)
		if err != nil {
			log.Fatalf("failed to seed achievement %q: %v", a.title, err)
		}
		fmt.Printf("seeded achievement: id=%s title=%s\n", achievementID, a.title)
	}
}

func intp(v int) *int { return &v }
