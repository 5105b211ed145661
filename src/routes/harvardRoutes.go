package routes

import (
	"github.com/DiffusedRelics/Relics-Backend/src/controllers"
	"github.com/DiffusedRelics/Relics-Backend/src/harvard"
	"github.com/gin-gonic/gin"
)

func SetupHarvardRoutes(router *gin.Engine, client *harvard.Client) {
	controller := controllers.NewHarvardController(client)

	router.GET("/api/search", controller.Search)
	router.GET("/api/artifact/:harvard_id", controller.GetArtifact)
}
