package models

import "time"

type ArtifactModel struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	Artist      *string   `json:"artist" gorm:"type:text"`
	Culture     *string   `json:"culture" gorm:"type:text"`
	Period      *string   `json:"period" gorm:"type:text"`
	Medium      *string   `json:"medium" gorm:"type:text"`
	Museum      *string   `json:"museum" gorm:"type:text"`
	Description *string   `json:"description" gorm:"type:text"`
	Metadata    *string   `json:"metadata" gorm:"type:text"`
	ImagePath   string    `json:"imagePath" gorm:"column:image_path;type:text"`
	UploadDate  time.Time `json:"uploadDate" gorm:"column:upload_date;autoCreateTime"`

	// Harvard Art Museums catalog fields, populated on API import
	HarvardObjectID      *int       `json:"harvardObjectId" gorm:"column:harvard_object_id;uniqueIndex"`
	HarvardObjectNumber  *string    `json:"harvardObjectNumber" gorm:"column:harvard_object_number;type:text"`
	Classification       *string    `json:"classification" gorm:"type:text"`
	Dated                *string    `json:"dated" gorm:"type:text"`
	DateBegin            *int       `json:"dateBegin" gorm:"column:date_begin"`
	DateEnd              *int       `json:"dateEnd" gorm:"column:date_end"`
	Century              *string    `json:"century" gorm:"type:text"`
	Technique            *string    `json:"technique" gorm:"type:text"`
	Dimensions           *string    `json:"dimensions" gorm:"type:text"`
	Provenance           *string    `json:"provenance" gorm:"type:text"`
	Creditline           *string    `json:"creditline" gorm:"type:text"`
	Department           *string    `json:"department" gorm:"type:text"`
	Division             *string    `json:"division" gorm:"type:text"`
	Copyright            *string    `json:"copyright" gorm:"type:text"`
	VerificationLevel    *int       `json:"verificationLevel" gorm:"column:verification_level"`
	ImagePermissionLevel int        `json:"imagePermissionLevel" gorm:"column:image_permission_level;default:0"`
	AccessLevel          int        `json:"accessLevel" gorm:"column:access_level;default:1"`
	HarvardURL           *string    `json:"harvardUrl" gorm:"column:harvard_url;type:text"`
	PrimaryImageURL      *string    `json:"primaryImageUrl" gorm:"column:primary_image_url;type:text"`
	IIIFBaseURI          *string    `json:"iiifBaseUri" gorm:"column:iiif_base_uri;type:text"`
	LastAPISync          *time.Time `json:"lastApiSync" gorm:"column:last_api_sync"`
	Section              *string    `json:"section" gorm:"type:text"`
}

func (ArtifactModel) TableName() string {
	return "artifacts"
}

// IsHarvardImport reports whether the record came from the catalog API
// rather than a manual upload.
func (a *ArtifactModel) IsHarvardImport() bool {
	return a.HarvardObjectID != nil
}
