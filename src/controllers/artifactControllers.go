package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DiffusedRelics/Relics-Backend/src/dtos"
	"github.com/DiffusedRelics/Relics-Backend/src/harvard"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/DiffusedRelics/Relics-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type ArtifactController struct {
	service        *services.ArtifactService
	interpolations *services.InterpolationService
	harvardClient  *harvard.Client
	drive          *utils.DriveService
}

func NewArtifactController(service *services.ArtifactService, interpolations *services.InterpolationService, harvardClient *harvard.Client, drive *utils.DriveService) *ArtifactController {
	return &ArtifactController{
		service:        service,
		interpolations: interpolations,
		harvardClient:  harvardClient,
		drive:          drive,
	}
}

// UploadArtifactForm handles GET /upload/artifact — tells the admin frontend
// which upload paths are available.
func (ac *ArtifactController) UploadArtifactForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"harvardAvailable": ac.harvardClient != nil,
		"driveAvailable":   ac.drive != nil,
		"maxUploadSize":    utils.MaxUploadSize,
	})
}

// UploadArtifact handles POST /upload/artifact. A harvard_id field delegates
// to the catalog import; otherwise the request is a manual upload with an
// image file or a drive_url.
func (ac *ArtifactController) UploadArtifact(ctx *gin.Context) {
	if harvardID := strings.TrimSpace(ctx.PostForm("harvard_id")); harvardID != "" {
		ac.addHarvardArtifact(ctx, harvardID)
		return
	}
	ac.addManualArtifact(ctx)
}

func (ac *ArtifactController) addHarvardArtifact(ctx *gin.Context, rawID string) {
	harvardID, err := strconv.Atoi(rawID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Harvard object ID"})
		return
	}

	existing, err := ac.service.FindByHarvardObjectID(harvardID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		ctx.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Artifact with Harvard ID %d already exists", harvardID),
			"id":    existing.ID,
		})
		return
	}

	if ac.harvardClient == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Harvard API not available. Please check API key."})
		return
	}

	obj, err := ac.harvardClient.GetObjectByID(harvardID)
	if err != nil {
		if errors.Is(err, harvard.ErrObjectNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Object with ID %d not found in Harvard Art Museums", harvardID)})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	artifact := harvard.ExtractArtifactData(obj)
	if err := ac.service.CreateArtifact(&artifact); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, dtos.NewArtifactViewDTO(artifact))
}

func (ac *ArtifactController) addManualArtifact(ctx *gin.Context) {
	imagePath, ok := ac.saveArtifactImage(ctx)
	if !ok {
		return
	}

	artifact := models.ArtifactModel{
		Title:       strings.TrimSpace(ctx.PostForm("title")),
		Artist:      formValue(ctx, "artist"),
		Culture:     formValue(ctx, "culture"),
		Period:      formValue(ctx, "period"),
		Medium:      formValue(ctx, "medium"),
		Museum:      formValue(ctx, "museum"),
		Description: formValue(ctx, "description"),
		Metadata:    formValue(ctx, "metadata"),
		ImagePath:   imagePath,
	}

	if err := ac.service.CreateArtifact(&artifact); err != nil {
		// Clean up the stored file when the record is rejected
		os.Remove(filepath.Join(utils.UploadRoot, filepath.FromSlash(imagePath)))
		if services.IsValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, dtos.NewArtifactViewDTO(artifact))
}

// saveArtifactImage persists the uploaded or Drive-linked image and returns
// its relative storage path. On failure it writes the error response itself.
func (ac *ArtifactController) saveArtifactImage(ctx *gin.Context) (string, bool) {
	if header, err := ctx.FormFile("image"); err == nil {
		if header.Filename == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No image selected"})
			return "", false
		}
		if !utils.AllowedFile(header.Filename) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload an image file."})
			return "", false
		}

		imagePath := utils.UploadFilename("artifacts", header.Filename)
		fullPath := filepath.Join(utils.UploadRoot, filepath.FromSlash(imagePath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create upload directory"})
			return "", false
		}
		if err := ctx.SaveUploadedFile(header, fullPath); err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save file"})
			return "", false
		}
		return imagePath, true
	}

	if driveURL := strings.TrimSpace(ctx.PostForm("drive_url")); driveURL != "" {
		return ac.saveDriveImage(ctx, driveURL)
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": "No image file"})
	return "", false
}

func (ac *ArtifactController) saveDriveImage(ctx *gin.Context, driveURL string) (string, bool) {
	if ac.drive == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google Drive import not available"})
		return "", false
	}
	if !utils.IsGoogleDriveURL(driveURL) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Not a Google Drive URL"})
		return "", false
	}

	fileID, err := utils.ExtractDriveFileID(driveURL)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	reader, name, err := ac.drive.DownloadImage(fileID)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return "", false
	}
	defer reader.Close()

	if !utils.AllowedFile(name) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload an image file."})
		return "", false
	}

	imagePath := utils.UploadFilename("artifacts", name)
	fullPath := filepath.Join(utils.UploadRoot, filepath.FromSlash(imagePath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create upload directory"})
		return "", false
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save file"})
		return "", false
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save file"})
		return "", false
	}
	return imagePath, true
}

// ViewArtifact handles GET /view/artifact/:id — the public detail view with
// every interpolation that uses the artifact as a source.
func (ac *ArtifactController) ViewArtifact(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	artifact, err := ac.service.GetArtifactByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Artifact not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	referencing, err := ac.interpolations.ListReferencing(id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	interpolationViews := make([]dtos.InterpolationViewDTO, 0, len(referencing))
	for i := range referencing {
		interpolationViews = append(interpolationViews, dtos.NewInterpolationViewDTO(referencing[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"artifact":       dtos.NewArtifactViewDTO(*artifact),
		"interpolations": interpolationViews,
	})
}

// EditArtifact handles POST /edit/artifact/:id — descriptive fields only.
func (ac *ArtifactController) EditArtifact(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var edit dtos.ArtifactEditDTO
	if err := ctx.ShouldBind(&edit); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artifact, err := ac.service.UpdateArtifact(id, &edit)
	if err != nil {
		switch {
		case services.IsValidationError(err):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Artifact not found"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Artifact updated successfully",
		"artifact": dtos.NewArtifactViewDTO(*artifact),
	})
}

// DeleteArtifact handles GET /delete/artifact/:id. Deletion is refused while
// interpolations still reference the artifact.
func (ac *ArtifactController) DeleteArtifact(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	artifact, err := ac.service.GetArtifactByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Artifact not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := ac.service.DeleteArtifact(id); err != nil {
		if errors.Is(err, services.ErrArtifactInUse) {
			count, _ := ac.service.CountReferencing(id)
			ctx.JSON(http.StatusConflict, gin.H{
				"error": fmt.Sprintf("Cannot delete artifact - it is used in %d interpolation(s). Delete those first.", count),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Artifact %q deleted successfully", artifact.Title)})
}

// ImportArtifactsExcel handles POST /upload/artifacts/excel — admin bulk
// import from a workbook.
func (ac *ArtifactController) ImportArtifactsExcel(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	result, err := ac.service.ImportArtifactsFromExcel(file)
	if err != nil {
		status := http.StatusBadRequest
		if result != nil && len(result.Errors) > 0 {
			ctx.JSON(status, gin.H{"error": err.Error(), "result": result})
			return
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func formValue(ctx *gin.Context, field string) *string {
	value := strings.TrimSpace(ctx.PostForm(field))
	if value == "" {
		return nil
	}
	return &value
}
