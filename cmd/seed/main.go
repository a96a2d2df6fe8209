package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/vidstream/vidstream-backend/config"
	"github.com/vidstream/vidstream-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@vidstream.example"
	username := "demoUser"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, username, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", userID, email, username, password)

	videos := []struct {
		title    string
		category string
		srcURL   string
	}{
		{"Getting started with vidstream", "tech", "https://storage.googleapis.com/vidstream-demo/videos/intro.mp4"},
		{"Lo-fi beats to code to", "music", "https://storage.googleapis.com/vidstream-demo/videos/lofi.mp4"},
		{"Speedrun highlights", "gaming", "https://storage.googleapis.com/vidstream-demo/videos/speedrun.mp4"},
	}
	for _, v := range videos {
		var id string
		err := db.QueryRow(`
			INSERT INTO videos (title, description, category, src_url, uploaded_by)
			VALUES ($1, '', $2, $3, $4)
			RETURNING id
		`, v.title, v.category, v.srcURL, userID).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed video %q: %v", v.title, err)
		}
		fmt.Printf("seeded video: id=%s title=%q\n", id, v.title)
	}
}
