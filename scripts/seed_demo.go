package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/khoahotran/connecthub/pkg/auth"
)

// Seeds a handful of demo users, friendships and posts so the search API
// has something to return locally. The content stores own the real write
// paths; this is dev convenience only.
func main() {
	fmt.Println("seeding demo data...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	users := []struct {
		username, email, first, last, bio string
	}{
		{"john", "john@example.com", "John", "Smith", "Coffee and climbing."},
		{"jane_doe", "jane@example.com", "Jane", "Doe", "Travel photos mostly."},
		{"mike88", "mike@example.com", "Mike", "Jones", ""},
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash, first_name, last_name, bio)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
			RETURNING id`,
			u.username, u.email, hash, u.first, u.last, u.bio,
		).Scan(&id)
		if err != nil {
			log.Fatalf("cannot seed user %s: %v", u.username, err)
		}
		ids = append(ids, id)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO friendships (requester_id, addressee_id, status)
		VALUES ($1, $2, 'accepted')
		ON CONFLICT DO NOTHING`, ids[0], ids[1])
	if err != nil {
		log.Fatalf("cannot seed friendship: %v", err)
	}

	posts := []struct {
		author   int64
		caption  string
		location string
		privacy  string
	}{
		{ids[0], "Sunrise hike above the fog", "Mount Tamalpais", "public"},
		{ids[0], "Flat white appreciation post", "Ritual Coffee", "friends"},
		{ids[1], "Gate change again...", "SFO Terminal 2", "public"},
		{ids[2], "Leg day. Never again.", "", "private"},
	}
	for _, p := range posts {
		_, err := pool.Exec(ctx, `
			INSERT INTO posts (author_id, caption, location_name, post_type, privacy_level, created_at)
			VALUES ($1, $2, $3, 'text', $4, $5)`,
			p.author, p.caption, p.location, p.privacy, time.Now().UTC())
		if err != nil {
			log.Fatalf("cannot seed post: %v", err)
		}
	}

	fmt.Println("seeded demo data successfully!")
}
