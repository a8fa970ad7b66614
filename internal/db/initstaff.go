package db

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// InitStaff seeds the admin console account from the environment on first
// start so the HTTP surface is reachable on a fresh database.
func InitStaff(database *Database) {
	username := os.Getenv("STAFF_USERNAME")
	password := os.Getenv("STAFF_PASSWORD")
	if username == "" || password == "" {
		log.Println("STAFF_USERNAME/STAFF_PASSWORD not set, skipping staff seeding")
		return
	}

	var count int
	err := database.ExecQueryRow(context.Background(), "SELECT COUNT(*) FROM staff_users WHERE username = $1", username).Scan(&count)
	if err != nil {
		log.Fatal(err)
	}

	if count > 0 {
		log.Println("Staff user already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	_, err = database.Exec(context.Background(), "INSERT INTO staff_users (username, password) VALUES ($1, $2)", username, string(hashed))
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Staff user created successfully.")
}
