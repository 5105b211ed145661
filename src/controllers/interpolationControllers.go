package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DiffusedRelics/Relics-Backend/src/dtos"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/DiffusedRelics/Relics-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type InterpolationController struct {
	service   *services.InterpolationService
	artifacts *services.ArtifactService
}

func NewInterpolationController(service *services.InterpolationService, artifacts *services.ArtifactService) *InterpolationController {
	return &InterpolationController{service: service, artifacts: artifacts}
}

// UploadInterpolationForm handles GET /upload/interpolation — the artifact
// candidates the form offers as sources.
func (ic *InterpolationController) UploadInterpolationForm(ctx *gin.Context) {
	options, err := ic.artifacts.ListArtifactOptions()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"artifacts": options})
}

// UploadInterpolation handles POST /upload/interpolation. The form carries
// parallel artifact_id and weight fields; order is preserved.
func (ic *InterpolationController) UploadInterpolation(ctx *gin.Context) {
	artifactIDs := ctx.PostFormArray("artifact_id")
	weights := ctx.PostFormArray("weight")

	if len(artifactIDs) < 2 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least 2 source artifacts"})
		return
	}
	if len(artifactIDs) != len(weights) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Each source artifact needs a weight"})
		return
	}

	sources := make([]models.SourceRef, 0, len(artifactIDs))
	for i := range artifactIDs {
		id, err := strconv.Atoi(strings.TrimSpace(artifactIDs[i]))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artifact ID"})
			return
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(weights[i]), 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight value"})
			return
		}
		sources = append(sources, models.SourceRef{ArtifactID: id, Weight: weight})
	}

	header, err := ctx.FormFile("image")
	if err != nil || header.Filename == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No image file"})
		return
	}
	if !utils.AllowedFile(header.Filename) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload an image file."})
		return
	}

	imagePath := utils.UploadFilename("interpolations", header.Filename)
	fullPath := filepath.Join(utils.UploadRoot, filepath.FromSlash(imagePath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create upload directory"})
		return
	}
	if err := ctx.SaveUploadedFile(header, fullPath); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save file"})
		return
	}

	interpolation, err := ic.service.CreateInterpolation(formValue(ctx, "model"), formValue(ctx, "description"), imagePath, sources)
	if err != nil {
		os.Remove(fullPath)
		if services.IsValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, dtos.NewInterpolationViewDTO(*interpolation))
}

// ViewInterpolation handles GET /view/interpolation/:id — the detail view
// with each source artifact and its blend weight. Sources whose artifact no
// longer exists are omitted.
func (ic *InterpolationController) ViewInterpolation(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	interpolation, err := ic.service.GetInterpolationByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Interpolation not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sources, err := interpolation.Sources()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sourceArtifacts := make([]dtos.SourceArtifactDTO, 0, len(sources))
	for _, ref := range sources {
		artifact, err := ic.artifacts.GetArtifactByID(ref.ArtifactID)
		if err != nil {
			continue // dangling reference
		}
		sourceArtifacts = append(sourceArtifacts, dtos.SourceArtifactDTO{
			ArtifactViewDTO: dtos.NewArtifactViewDTO(*artifact),
			Weight:          ref.Weight,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"interpolation":   dtos.NewInterpolationViewDTO(*interpolation),
		"sourceArtifacts": sourceArtifacts,
	})
}

// DeleteInterpolation handles GET /delete/interpolation/:id.
func (ic *InterpolationController) DeleteInterpolation(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := ic.service.DeleteInterpolation(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Interpolation not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Interpolation deleted successfully"})
}
