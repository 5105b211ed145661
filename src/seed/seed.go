package seed

import (
	"log"
	"os"

	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the default admin account when the admins table is empty.
// The password comes from ADMIN_PASSWORD, falling back to admin123 for
// local development.
func Seed(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.AdminModel{}).Count(&count).Error; err != nil {
		log.Printf("Failed to count admins: %v\n", err)
		return
	}
	if count > 0 {
		log.Println("Admin account already exists")
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v\n", err)
		return
	}

	admin := models.AdminModel{
		Username:     "admin",
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to create admin: %v\n", err)
	} else {
		log.Println("Created default admin user")
	}
}
