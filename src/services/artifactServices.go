package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/DiffusedRelics/Relics-Backend/src/dtos"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/DiffusedRelics/Relics-Backend/src/utils"
	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ArtifactService struct {
	db *gorm.DB
}

func NewArtifactService(db *gorm.DB) *ArtifactService {
	return &ArtifactService{db: db}
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

func (s *ArtifactService) CreateArtifact(artifact *models.ArtifactModel) error {
	if strings.TrimSpace(artifact.Title) == "" {
		return validationErrorf("title is required")
	}
	return s.db.Create(artifact).Error
}

func (s *ArtifactService) GetArtifactByID(id int) (*models.ArtifactModel, error) {
	var artifact models.ArtifactModel
	if err := s.db.First(&artifact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &artifact, nil
}

func (s *ArtifactService) GetAllArtifacts() ([]models.ArtifactModel, error) {
	var artifacts []models.ArtifactModel
	if err := s.db.Order("id DESC").Find(&artifacts).Error; err != nil {
		return nil, err
	}
	return artifacts, nil
}

// ListArtifactOptions returns the slim list the interpolation upload form
// offers as source candidates, ordered by title.
func (s *ArtifactService) ListArtifactOptions() ([]dtos.ArtifactOptionDTO, error) {
	var options []dtos.ArtifactOptionDTO
	err := s.db.Model(&models.ArtifactModel{}).
		Select("id", "title", "artist").
		Order("title").
		Scan(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

// FindByHarvardObjectID returns the artifact imported from the given catalog
// object, or nil when none exists.
func (s *ArtifactService) FindByHarvardObjectID(objectID int) (*models.ArtifactModel, error) {
	var artifact models.ArtifactModel
	err := s.db.Where("harvard_object_id = ?", objectID).First(&artifact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// UpdateArtifact changes descriptive fields only; the image and identity are
// immutable after creation.
func (s *ArtifactService) UpdateArtifact(id int, edit *dtos.ArtifactEditDTO) (*models.ArtifactModel, error) {
	if strings.TrimSpace(edit.Title) == "" {
		return nil, validationErrorf("title is required")
	}

	var artifact models.ArtifactModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&artifact, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"title":       strings.TrimSpace(edit.Title),
			"artist":      edit.Artist,
			"culture":     edit.Culture,
			"period":      edit.Period,
			"medium":      edit.Medium,
			"museum":      edit.Museum,
			"description": edit.Description,
			"metadata":    edit.Metadata,
		}
		if err := tx.Model(&artifact).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&artifact, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// DeleteArtifact removes an artifact unless an interpolation still references
// it. The local image file is removed best-effort; a failure there is logged
// and does not undo the delete.
func (s *ArtifactService) DeleteArtifact(id int) error {
	artifact, err := s.GetArtifactByID(id)
	if err != nil {
		return err
	}

	var interpolations []models.InterpolationModel
	if err := s.db.Find(&interpolations).Error; err != nil {
		return err
	}
	for i := range interpolations {
		if interpolations[i].References(id) {
			return ErrArtifactInUse
		}
	}

	if err := s.db.Delete(&models.ArtifactModel{}, id).Error; err != nil {
		return err
	}

	if !artifact.IsHarvardImport() && artifact.ImagePath != "" {
		removeUploadedFile(artifact.ImagePath)
	}
	return nil
}

// CountReferencing returns how many interpolations use the artifact, for the
// conflict message shown on a blocked delete.
func (s *ArtifactService) CountReferencing(id int) (int, error) {
	var interpolations []models.InterpolationModel
	if err := s.db.Find(&interpolations).Error; err != nil {
		return 0, err
	}
	count := 0
	for i := range interpolations {
		if interpolations[i].References(id) {
			count++
		}
	}
	return count, nil
}

func removeUploadedFile(relativePath string) {
	fullPath := filepath.Join(utils.UploadRoot, filepath.FromSlash(relativePath))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not delete image file %s: %v\n", fullPath, err)
	}
}

// importSheet is the worksheet bulk imports are read from.
const importSheet = "Artifacts"

// ImportArtifactsFromExcel bulk-creates artifacts from a workbook. The first
// row is a header; columns are title, artist, culture, period, medium,
// museum, description. Rows that fail keep the import going.
func (s *ArtifactService) ImportArtifactsFromExcel(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(importSheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %s: %w", importSheet, err)
	}

	result := &ImportResult{Imported: 0, Errors: []string{}}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		artifact := models.ArtifactModel{
			Title:       strings.TrimSpace(row[0]),
			Artist:      cellValue(row, 1),
			Culture:     cellValue(row, 2),
			Period:      cellValue(row, 3),
			Medium:      cellValue(row, 4),
			Museum:      cellValue(row, 5),
			Description: cellValue(row, 6),
		}

		if err := s.db.Create(&artifact).Error; err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	if result.Imported == 0 && len(result.Errors) > 0 {
		return result, fmt.Errorf("no artifacts could be imported")
	}
	return result, nil
}

func cellValue(row []string, idx int) *string {
	if idx >= len(row) {
		return nil
	}
	value := strings.TrimSpace(row[idx])
	if value == "" {
		return nil
	}
	return &value
}
