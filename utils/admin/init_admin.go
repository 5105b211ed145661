package main

import (
	"log"
	"os"

	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Standalone admin bootstrap for deployments where the server itself must
// not seed credentials. Reads DATABASE_URL and ADMIN_PASSWORD.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Migrate schema if not exists
	if err := db.AutoMigrate(&models.AdminModel{}); err != nil {
		log.Fatalf("failed to migrate admin model: %v", err)
	}

	var admin models.AdminModel
	result := db.Where("username = ?", "admin").First(&admin)
	if result.Error == nil {
		log.Println("User 'admin' already exists")
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	newAdmin := models.AdminModel{
		Username:     "admin",
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(&newAdmin).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	log.Println("User 'admin' created")
}
