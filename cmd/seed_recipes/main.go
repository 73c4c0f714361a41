package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
)

// Seeds the local recipe cache from a JSON file so search has a fallback
// corpus before any upstream traffic has been cached.
func main() {
	file := flag.String("file", "seed/recipes.json", "JSON file with an array of recipes")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	seeded := 0
	for i := range recipes {
		r := &recipes[i]
		if r.ID == "" || r.Title == "" {
			log.Printf("Skipping entry %d: id and title are required", i)
			continue
		}
		r.Embedding = service.GenerateEmbedding(r.Title + " " + r.Summary)
		if r.Cuisines == nil {
			r.Cuisines = models.JSONBStringArray{}
		}
		if r.Diets == nil {
			r.Diets = models.JSONBStringArray{}
		}

		var existing models.Recipe
		if err := db.Where("id = ?", r.ID).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(r).Error; err != nil {
			log.Printf("Failed to seed recipe %s: %v", r.ID, err)
			continue
		}
		seeded++
	}

	log.Printf("Seeded %d recipes from %s", seeded, *file)
}
