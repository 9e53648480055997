// Command main seeds the database with demo data for development.
package main

import (
	"flag"
	"log"

	"skilltrack/internal/config"
	"skilltrack/internal/database"
	"skilltrack/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 5, "number of users to create")
	skillsPerUser := flag.Int("skills", 4, "skills per user")
	entriesPerSkill := flag.Int("entries", 12, "progress entries per skill")
	clean := flag.Bool("clean", false, "delete existing data first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:        *numUsers,
		SkillsPerUser:   *skillsPerUser,
		EntriesPerSkill: *entriesPerSkill,
		ShouldClean:     *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
