// Command seed populates the database with demo posts.
package main

import (
	"flag"
	"log"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 12, "Number of published posts to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.NewFactory(db).Run(*numPosts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
