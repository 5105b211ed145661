package routes

import (
	"github.com/DiffusedRelics/Relics-Backend/src/controllers"
	"github.com/DiffusedRelics/Relics-Backend/src/harvard"
	"github.com/DiffusedRelics/Relics-Backend/src/middleware"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/DiffusedRelics/Relics-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

func SetupArtifactRoutes(router *gin.Engine, service *services.ArtifactService, interpolations *services.InterpolationService, harvardClient *harvard.Client, drive *utils.DriveService) {
	controller := controllers.NewArtifactController(service, interpolations, harvardClient, drive)

	// Public routes
	router.GET("/view/artifact/:id", controller.ViewArtifact)

	// Admin routes
	admin := router.Group("")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/upload/artifact", controller.UploadArtifactForm)
		admin.POST("/upload/artifact", controller.UploadArtifact)
		admin.POST("/upload/artifacts/excel", controller.ImportArtifactsExcel)
		admin.POST("/edit/artifact/:id", controller.EditArtifact)
		admin.GET("/delete/artifact/:id", controller.DeleteArtifact)
	}
}
