package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"

	"github.com/DiffusedRelics/Relics-Backend/src/db"
	"github.com/DiffusedRelics/Relics-Backend/src/harvard"
	"github.com/DiffusedRelics/Relics-Backend/src/middleware"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/DiffusedRelics/Relics-Backend/src/routes"
	"github.com/DiffusedRelics/Relics-Backend/src/seed"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/DiffusedRelics/Relics-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

func main() {

	// Database connection
	db, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(&models.ArtifactModel{}, &models.InterpolationModel{}, &models.AdminModel{}); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// Default admin account
	seed.Seed(db)

	// Session token secret
	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("Error generating secret key: %v\n", err)
		}
		secretKey = hex.EncodeToString(buf)
		log.Println("SECRET_KEY not set, generated a random session secret")
	}
	middleware.SetSecretKey(secretKey)

	// Harvard catalog client (optional)
	harvardClient, err := harvard.NewClientFromEnv()
	if err != nil {
		log.Printf("Harvard API client unavailable: %v\n", err)
		harvardClient = nil
	}

	// Google Drive import (optional)
	driveService, err := utils.NewDriveServiceFromEnv()
	if err != nil {
		log.Printf("Google Drive import unavailable: %v\n", err)
		driveService = nil
	}

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":5005"
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())
	router.MaxMultipartMemory = utils.MaxUploadSize

	// Services setup
	artifactService := services.NewArtifactService(db)
	interpolationService := services.NewInterpolationService(db)
	adminService := services.NewAdminService(db)

	// Routes setup
	routes.SetupGalleryRoutes(router, artifactService, interpolationService)
	routes.SetupAuthRoutes(router, adminService)
	routes.SetupArtifactRoutes(router, artifactService, interpolationService, harvardClient, driveService)
	routes.SetupInterpolationRoutes(router, interpolationService, artifactService)
	routes.SetupHarvardRoutes(router, harvardClient)

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
