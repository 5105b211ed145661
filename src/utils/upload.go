package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// UploadRoot is where persisted images live, served under /static/uploads.
const UploadRoot = "static/uploads"

// MaxUploadSize caps multipart uploads at 16MB.
const MaxUploadSize = 16 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".tiff": true,
	".webp": true,
}

// AllowedFile reports whether the filename carries an accepted image extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename strips path components and characters that are unsafe in a
// stored filename.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "upload"
	}
	return name
}

// UploadFilename builds the relative storage path for an uploaded image,
// e.g. "artifacts/20240301120000_vase.jpg".
func UploadFilename(subdir, original string) string {
	timestamp := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s/%s_%s", subdir, timestamp, SanitizeFilename(original))
}
