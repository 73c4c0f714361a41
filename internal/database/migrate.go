package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// RunMigrations brings the schema up to date. On postgres the pgvector
// extension must exist before the recipes table is created.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			log.Printf("Could not ensure pgvector extension: %v", err)
		}
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Favorite{},
		&models.Review{},
		&models.ShoppingList{},
		&models.ShoppingItem{},
		&models.SearchLog{},
	)
}
