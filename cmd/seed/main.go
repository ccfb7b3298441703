// Command seed populates the database with the built-in groups and,
// optionally, demo content.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	demo := flag.Bool("demo", false, "also generate demo users, posts, comments, and follows")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Groups(db); err != nil {
		log.Fatalf("Failed to seed groups: %v", err)
	}
	log.Printf("Seeded %d built-in groups", len(seed.BuiltInGroups))

	if *demo {
		opts := seed.DefaultDemoOptions()
		if err := seed.Demo(db, opts); err != nil {
			log.Fatalf("Failed to seed demo content: %v", err)
		}
		log.Printf("Seeded %d demo users (password %q)", opts.Users, opts.Password)
	}
}
