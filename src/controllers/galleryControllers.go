package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DiffusedRelics/Relics-Backend/src/dtos"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/DiffusedRelics/Relics-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type GalleryController struct {
	artifacts      *services.ArtifactService
	interpolations *services.InterpolationService
}

func NewGalleryController(artifacts *services.ArtifactService, interpolations *services.InterpolationService) *GalleryController {
	return &GalleryController{artifacts: artifacts, interpolations: interpolations}
}

// Index handles GET / — the public gallery listing: all artifacts, all
// interpolations and the paired slider view.
func (gc *GalleryController) Index(ctx *gin.Context) {
	artifacts, err := gc.artifacts.GetAllArtifacts()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	interpolations, err := gc.interpolations.GetAllInterpolations()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	artifactViews := make([]dtos.ArtifactViewDTO, 0, len(artifacts))
	byID := make(map[int]*models.ArtifactModel, len(artifacts))
	for i := range artifacts {
		artifactViews = append(artifactViews, dtos.NewArtifactViewDTO(artifacts[i]))
		byID[artifacts[i].ID] = &artifacts[i]
	}

	interpolationViews := make([]dtos.InterpolationViewDTO, 0, len(interpolations))
	for i := range interpolations {
		interpolationViews = append(interpolationViews, dtos.NewInterpolationViewDTO(interpolations[i]))
	}

	paired := services.BuildPairedInterpolations(interpolations, func(artifactID int) *models.ArtifactModel {
		return byID[artifactID]
	})

	ctx.JSON(http.StatusOK, gin.H{
		"artifacts":            artifactViews,
		"interpolations":       interpolationViews,
		"pairedInterpolations": paired,
	})
}

// Health handles GET /health, the liveness probe.
func (gc *GalleryController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ServeUploadedFile handles GET /static/uploads/*filepath with long-lived
// cache headers, since stored images never change after upload.
func (gc *GalleryController) ServeUploadedFile(ctx *gin.Context) {
	relative := strings.TrimPrefix(ctx.Param("filepath"), "/")
	cleaned := filepath.Clean(filepath.FromSlash(relative))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file path"})
		return
	}

	fullPath := filepath.Join(utils.UploadRoot, cleaned)
	fileInfo, err := os.Stat(fullPath)
	if err != nil || fileInfo.IsDir() {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	lastModified := fileInfo.ModTime().UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
	etag := fmt.Sprintf(`"%x-%x"`, fileInfo.Size(), fileInfo.ModTime().Unix())

	// Cache for 1 year (images rarely change)
	ctx.Header("Cache-Control", "public, max-age=31536000")
	ctx.Header("ETag", etag)
	ctx.Header("Last-Modified", lastModified)

	if match := ctx.GetHeader("If-None-Match"); match == etag {
		ctx.Status(http.StatusNotModified)
		return
	}

	if modSince := ctx.GetHeader("If-Modified-Since"); modSince != "" {
		if t, err := time.Parse("Mon, 02 Jan 2006 15:04:05 GMT", modSince); err == nil {
			if !fileInfo.ModTime().After(t) {
				ctx.Status(http.StatusNotModified)
				return
			}
		}
	}

	ctx.File(fullPath)
}
