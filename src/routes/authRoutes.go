package routes

import (
	"github.com/DiffusedRelics/Relics-Backend/src/controllers"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.Engine, service *services.AdminService) {
	controller := controllers.NewAuthController(service)

	// Public routes
	router.GET("/login", controller.LoginPage)
	router.POST("/login", controller.Login)
	router.GET("/logout", controller.Logout)
}
