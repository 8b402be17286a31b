package db

import (
	"log"
	"os"
	"vulpax/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the single shared handle, created once in Init and never re-created
// mid-session.
var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=vulpax port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Application{},
		&models.Comment{},
		&models.Download{},
		&models.Demo{},
		&models.Reference{},
		&models.ReferenceImage{},
		&models.Track{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCategories()
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return
	}

	categories := []models.Category{
		{Name: "Desktop", Slug: "desktop", Description: "Desktop tools and utilities"},
		{Name: "Mobile", Slug: "mobile", Description: "Android and iOS applications"},
		{Name: "Web", Slug: "web", Description: "Browser based applications"},
		{Name: "Developer", Slug: "developer", Description: "Tools for developers"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Name, err)
		}
	}
	log.Println("Initial categories created successfully")
}
