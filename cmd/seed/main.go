// Command seed populates the database with demo users and log entries.
package main

import (
	"flag"
	"log"

	"caltrack/internal/config"
	"caltrack/internal/database"
	"caltrack/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	maxDays := flag.Int("days", 30, "Spread entries over the last N days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users over %d days, clean=%v\n", *numUsers, *maxDays, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
