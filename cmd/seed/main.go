// Command main runs the database seeder for Blogify.
package main

import (
	"flag"
	"log"

	"blogify/internal/config"
	"blogify/internal/database"
	"blogify/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numBlogs := flag.Int("blogs", 100, "Number of blogs to create")
	numComments := flag.Int("comments", 300, "Number of comments to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

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
		NumBlogs:    *numBlogs,
		NumComments: *numComments,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
