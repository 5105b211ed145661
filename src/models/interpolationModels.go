package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type InterpolationModel struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Model       *string   `json:"model" gorm:"type:text"`
	Description *string   `json:"description" gorm:"type:text"`
	ImagePath   string    `json:"imagePath" gorm:"column:image_path;type:text;not null"`
	ArtifactIDs string    `json:"-" gorm:"column:artifact_ids;type:text;not null"`
	Weights     string    `json:"-" gorm:"column:weights;type:text;not null"`
	UploadDate  time.Time `json:"uploadDate" gorm:"column:upload_date;autoCreateTime"`
}

func (InterpolationModel) TableName() string {
	return "interpolations"
}

// SourceRef is one ordered (artifact, weight) entry of an interpolation.
// The two delimited columns are only ever read and written through this type,
// so the id and weight sequences cannot drift apart.
type SourceRef struct {
	ArtifactID int     `json:"artifactId"`
	Weight     float64 `json:"weight"`
}

// Sources decodes the stored comma-delimited columns into ordered refs.
func (m *InterpolationModel) Sources() ([]SourceRef, error) {
	ids := strings.Split(m.ArtifactIDs, ",")
	weights := strings.Split(m.Weights, ",")
	if len(ids) != len(weights) {
		return nil, fmt.Errorf("interpolation %d: %d artifact ids but %d weights", m.ID, len(ids), len(weights))
	}

	refs := make([]SourceRef, 0, len(ids))
	for i := range ids {
		id, err := strconv.Atoi(strings.TrimSpace(ids[i]))
		if err != nil {
			return nil, fmt.Errorf("interpolation %d: bad artifact id %q: %w", m.ID, ids[i], err)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(weights[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("interpolation %d: bad weight %q: %w", m.ID, weights[i], err)
		}
		refs = append(refs, SourceRef{ArtifactID: id, Weight: weight})
	}
	return refs, nil
}

// SetSources encodes ordered refs into the delimited columns.
func (m *InterpolationModel) SetSources(refs []SourceRef) {
	ids := make([]string, len(refs))
	weights := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = strconv.Itoa(ref.ArtifactID)
		weights[i] = strconv.FormatFloat(ref.Weight, 'f', -1, 64)
	}
	m.ArtifactIDs = strings.Join(ids, ",")
	m.Weights = strings.Join(weights, ",")
}

// References reports whether artifactID appears among the sources. Comparison
// is by decoded element, so artifact 5 never matches 15 or 25.
func (m *InterpolationModel) References(artifactID int) bool {
	refs, err := m.Sources()
	if err != nil {
		return false
	}
	for _, ref := range refs {
		if ref.ArtifactID == artifactID {
			return true
		}
	}
	return false
}
