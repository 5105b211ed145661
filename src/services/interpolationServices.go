package services

import (
	"errors"

	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"gorm.io/gorm"
)

type InterpolationService struct {
	db *gorm.DB
}

func NewInterpolationService(db *gorm.DB) *InterpolationService {
	return &InterpolationService{db: db}
}

// CreateInterpolation persists a derived image blended from the given ordered
// sources. At least two sources are required, weights must be non-negative
// and sum to a positive value.
func (s *InterpolationService) CreateInterpolation(model, description *string, imagePath string, sources []models.SourceRef) (*models.InterpolationModel, error) {
	if len(sources) < 2 {
		return nil, validationErrorf("at least 2 source artifacts are required")
	}

	total := 0.0
	for _, ref := range sources {
		if ref.Weight < 0 {
			return nil, validationErrorf("weights must not be negative")
		}
		total += ref.Weight
	}
	if total <= 0 {
		return nil, validationErrorf("weights must sum to a positive value")
	}

	interpolation := models.InterpolationModel{
		Model:       model,
		Description: description,
		ImagePath:   imagePath,
	}
	interpolation.SetSources(sources)

	if err := s.db.Create(&interpolation).Error; err != nil {
		return nil, err
	}
	return &interpolation, nil
}

func (s *InterpolationService) GetInterpolationByID(id int) (*models.InterpolationModel, error) {
	var interpolation models.InterpolationModel
	if err := s.db.First(&interpolation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &interpolation, nil
}

func (s *InterpolationService) GetAllInterpolations() ([]models.InterpolationModel, error) {
	var interpolations []models.InterpolationModel
	if err := s.db.Order("id DESC").Find(&interpolations).Error; err != nil {
		return nil, err
	}
	return interpolations, nil
}

// ListReferencing returns every interpolation whose sources contain the given
// artifact. Matching is by decoded source id, never by substring over the
// stored column.
func (s *InterpolationService) ListReferencing(artifactID int) ([]models.InterpolationModel, error) {
	var interpolations []models.InterpolationModel
	if err := s.db.Order("id DESC").Find(&interpolations).Error; err != nil {
		return nil, err
	}

	referencing := make([]models.InterpolationModel, 0)
	for i := range interpolations {
		if interpolations[i].References(artifactID) {
			referencing = append(referencing, interpolations[i])
		}
	}
	return referencing, nil
}

// DeleteInterpolation removes an interpolation and best-effort deletes its
// image file.
func (s *InterpolationService) DeleteInterpolation(id int) error {
	interpolation, err := s.GetInterpolationByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.InterpolationModel{}, id).Error; err != nil {
		return err
	}

	if interpolation.ImagePath != "" {
		removeUploadedFile(interpolation.ImagePath)
	}
	return nil
}
