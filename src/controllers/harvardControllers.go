package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DiffusedRelics/Relics-Backend/src/harvard"
	"github.com/gin-gonic/gin"
)

// HarvardController proxies the Harvard Art Museums catalog for the admin
// search UI. The client may be nil when no API key is configured.
type HarvardController struct {
	client *harvard.Client
}

func NewHarvardController(client *harvard.Client) *HarvardController {
	return &HarvardController{client: client}
}

// Search handles GET /api/search?q= — catalog search suggestions.
func (hc *HarvardController) Search(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("q"))
	if len(query) < 2 {
		ctx.JSON(http.StatusOK, gin.H{"suggestions": []harvard.SearchResult{}})
		return
	}

	if hc.client == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Harvard API not available"})
		return
	}

	results, err := hc.client.SearchObjects(query, 5)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"suggestions": results})
}

// GetArtifact handles GET /api/artifact/:harvard_id — the full catalog record.
func (hc *HarvardController) GetArtifact(ctx *gin.Context) {
	harvardID, err := strconv.Atoi(ctx.Param("harvard_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Harvard object ID"})
		return
	}

	if hc.client == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Harvard API not available"})
		return
	}

	obj, err := hc.client.GetObjectByID(harvardID)
	if err != nil {
		if errors.Is(err, harvard.ErrObjectNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Artifact not found"})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, obj)
}
