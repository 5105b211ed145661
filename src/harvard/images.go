package harvard

import (
	"fmt"

	"github.com/DiffusedRelics/Relics-Backend/src/models"
)

// Catalog image permission levels.
const (
	PermissionFull      = 0 // full-size display allowed
	PermissionLimited   = 1 // display limited to 256px
	PermissionNoDisplay = 2 // no image display allowed
)

const limitedMaxSize = 256

// PlaceholderImage is served when the catalog forbids image display or no
// image URL is known.
const PlaceholderImage = "/static/no-image.png"

// PermissionText describes an image permission level for display.
func PermissionText(level int) string {
	switch level {
	case PermissionFull:
		return "Full display allowed"
	case PermissionLimited:
		return "Limited to 256px"
	case PermissionNoDisplay:
		return "No image display"
	default:
		return "Unknown"
	}
}

// DisplayImageURL resolves the image URL to render for an artifact, honoring
// catalog permission levels for imported records and falling back to the
// local upload path otherwise.
func DisplayImageURL(a *models.ArtifactModel) string {
	if !a.IsHarvardImport() {
		if a.ImagePath == "" {
			return PlaceholderImage
		}
		return "/static/uploads/" + a.ImagePath
	}

	switch {
	case a.ImagePermissionLevel == PermissionNoDisplay:
		return PlaceholderImage
	case a.ImagePermissionLevel == PermissionLimited && a.IIIFBaseURI != nil:
		return iiifURL(*a.IIIFBaseURI, limitedMaxSize)
	case a.PrimaryImageURL != nil:
		return *a.PrimaryImageURL
	default:
		return PlaceholderImage
	}
}

// ThumbnailURL resolves a sized thumbnail for an artifact.
func ThumbnailURL(a *models.ArtifactModel, size int) string {
	if !a.IsHarvardImport() {
		if a.ImagePath == "" {
			return PlaceholderImage
		}
		return "/static/uploads/" + a.ImagePath
	}

	if a.ImagePermissionLevel == PermissionNoDisplay {
		return PlaceholderImage
	}

	if a.IIIFBaseURI != nil {
		maxSize := size
		if a.ImagePermissionLevel == PermissionLimited && maxSize > limitedMaxSize {
			maxSize = limitedMaxSize
		}
		return iiifURL(*a.IIIFBaseURI, maxSize)
	}

	if a.PrimaryImageURL != nil {
		return *a.PrimaryImageURL
	}
	return PlaceholderImage
}

func iiifURL(baseURI string, size int) string {
	return fmt.Sprintf("%s/full/%d,/0/default.jpg", baseURI, size)
}
