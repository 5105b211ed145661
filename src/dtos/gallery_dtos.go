package dtos

import (
	"github.com/DiffusedRelics/Relics-Backend/src/harvard"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
)

// ArtifactViewDTO is an artifact plus the image URLs the frontend should
// actually render, resolved from catalog permission levels.
type ArtifactViewDTO struct {
	models.ArtifactModel
	DisplayImageURL string `json:"displayImageUrl"`
	ThumbnailURL    string `json:"thumbnailUrl"`
}

func NewArtifactViewDTO(a models.ArtifactModel) ArtifactViewDTO {
	return ArtifactViewDTO{
		ArtifactModel:   a,
		DisplayImageURL: harvard.DisplayImageURL(&a),
		ThumbnailURL:    harvard.ThumbnailURL(&a, 200),
	}
}

// InterpolationViewDTO exposes an interpolation with its sources decoded into
// ordered (artifact, weight) refs.
type InterpolationViewDTO struct {
	models.InterpolationModel
	Sources []models.SourceRef `json:"sources"`
}

func NewInterpolationViewDTO(m models.InterpolationModel) InterpolationViewDTO {
	sources, _ := m.Sources()
	return InterpolationViewDTO{InterpolationModel: m, Sources: sources}
}

// PositionedInterpolationDTO is a two-source interpolation placed on the
// slider between its pair of artifacts. Position runs 0-100 from the
// lower-ID artifact toward the higher-ID one.
type PositionedInterpolationDTO struct {
	ID         int     `json:"id"`
	ImagePath  string  `json:"imagePath"`
	Model      *string `json:"model"`
	WeightLow  float64 `json:"weightLow"`
	WeightHigh float64 `json:"weightHigh"`
	Position   float64 `json:"position"`
}

// ArtifactPairDTO groups every two-source interpolation over the same
// unordered artifact pair, sorted left to right.
type ArtifactPairDTO struct {
	ArtifactLow    ArtifactViewDTO              `json:"artifactLow"`
	ArtifactHigh   ArtifactViewDTO              `json:"artifactHigh"`
	Interpolations []PositionedInterpolationDTO `json:"interpolations"`
}

// SourceArtifactDTO is a source artifact of an interpolation together with
// its blend weight.
type SourceArtifactDTO struct {
	ArtifactViewDTO
	Weight float64 `json:"weight"`
}

// ArtifactOptionDTO is the slim shape used by the interpolation upload form.
type ArtifactOptionDTO struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Artist *string `json:"artist"`
}

// ArtifactEditDTO carries the descriptive fields an admin may change after
// creation. Image and identity are immutable.
type ArtifactEditDTO struct {
	Title       string  `json:"title" form:"title"`
	Artist      *string `json:"artist" form:"artist"`
	Culture     *string `json:"culture" form:"culture"`
	Period      *string `json:"period" form:"period"`
	Medium      *string `json:"medium" form:"medium"`
	Museum      *string `json:"museum" form:"museum"`
	Description *string `json:"description" form:"description"`
	Metadata    *string `json:"metadata" form:"metadata"`
}
