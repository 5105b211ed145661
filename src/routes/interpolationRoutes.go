package routes

import (
	"github.com/DiffusedRelics/Relics-Backend/src/controllers"
	"github.com/DiffusedRelics/Relics-Backend/src/middleware"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupInterpolationRoutes(router *gin.Engine, service *services.InterpolationService, artifacts *services.ArtifactService) {
	controller := controllers.NewInterpolationController(service, artifacts)

	// Public routes
	router.GET("/view/interpolation/:id", controller.ViewInterpolation)

	// Admin routes
	admin := router.Group("")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/upload/interpolation", controller.UploadInterpolationForm)
		admin.POST("/upload/interpolation", controller.UploadInterpolation)
		admin.GET("/delete/interpolation/:id", controller.DeleteInterpolation)
	}
}
