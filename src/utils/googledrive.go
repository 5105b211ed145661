package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService downloads artifact images shared through Google Drive links.
// It is optional: when no service-account credentials are configured the
// server runs without Drive import.
type DriveService struct {
	service *drive.Service
}

// NewDriveServiceFromEnv builds a Drive client from service-account
// credentials, taken from GOOGLE_DRIVE_CREDENTIALS_PATH (a file) or
// GOOGLE_DRIVE_CREDENTIALS_JSON (the raw JSON).
func NewDriveServiceFromEnv() (*DriveService, error) {
	ctx := context.Background()

	credentialsJSON := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON")
	if credentialsPath := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_PATH"); credentialsPath != "" {
		data, err := os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("reading drive credentials file: %w", err)
		}
		credentialsJSON = string(data)
	}
	if credentialsJSON == "" {
		return nil, fmt.Errorf("GOOGLE_DRIVE_CREDENTIALS_PATH or GOOGLE_DRIVE_CREDENTIALS_JSON must be set")
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("loading drive credentials: %w", err)
	}

	service, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	log.Println("[GOOGLE_DRIVE] Service initialized")
	return &DriveService{service: service}, nil
}

// IsGoogleDriveURL reports whether a URL points at Google Drive.
func IsGoogleDriveURL(url string) bool {
	return strings.Contains(url, "drive.google.com")
}

var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`drive\.google\.com/open\?id=([a-zA-Z0-9_-]+)`),
}

// ExtractDriveFileID pulls the file id out of the common Drive URL shapes.
func ExtractDriveFileID(url string) (string, error) {
	for _, pattern := range driveIDPatterns {
		if matches := pattern.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	}
	return "", fmt.Errorf("could not extract a file id from the url: %s", url)
}

// DownloadImage fetches a Drive file and returns its content, name and mime
// type. Only image files are accepted.
func (d *DriveService) DownloadImage(fileID string) (io.ReadCloser, string, error) {
	file, err := d.service.Files.Get(fileID).Fields("id", "name", "mimeType", "size").Do()
	if err != nil {
		return nil, "", fmt.Errorf("fetching drive file metadata: %w", err)
	}

	if !strings.HasPrefix(file.MimeType, "image/") {
		return nil, "", fmt.Errorf("drive file %s is not an image (%s)", file.Name, file.MimeType)
	}

	resp, err := d.service.Files.Get(fileID).Download()
	if err != nil {
		return nil, "", fmt.Errorf("downloading drive file: %w", err)
	}

	log.Printf("[GOOGLE_DRIVE] Downloaded %s (%s, %d bytes)", file.Name, file.MimeType, file.Size)
	return resp.Body, file.Name, nil
}
