package routes

import (
	"github.com/DiffusedRelics/Relics-Backend/src/controllers"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupGalleryRoutes(router *gin.Engine, artifacts *services.ArtifactService, interpolations *services.InterpolationService) {
	controller := controllers.NewGalleryController(artifacts, interpolations)

	router.GET("/", controller.Index)
	router.GET("/health", controller.Health)
	router.GET("/static/uploads/*filepath", controller.ServeUploadedFile)
}
