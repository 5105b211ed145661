package harvard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DiffusedRelics/Relics-Backend/src/models"
)

const defaultBaseURL = "https://api.harvardartmuseums.org"

var (
	// ErrNotConfigured means no API key is available; catalog features are off.
	ErrNotConfigured = errors.New("harvard api: HARVARD_API_KEY is not set")

	// ErrObjectNotFound means the catalog has no object with the given id.
	ErrObjectNotFound = errors.New("harvard api: object not found")
)

// Client talks to the Harvard Art Museums REST API. A nil *Client is the
// "catalog unavailable" state; handlers must check before use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientFromEnv builds a client from HARVARD_API_KEY, or returns
// ErrNotConfigured when the key is absent.
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("HARVARD_API_KEY")
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	return NewClient(apiKey), nil
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimSuffix(base, "/")
}

// Object is a catalog record as returned by the /object endpoint. Field names
// mirror the provider schema.
type Object struct {
	ObjectID             int      `json:"objectid"`
	ObjectNumber         string   `json:"objectnumber"`
	Title                string   `json:"title"`
	Dated                string   `json:"dated"`
	DateBegin            int      `json:"datebegin"`
	DateEnd              int      `json:"dateend"`
	Century              string   `json:"century"`
	Classification       string   `json:"classification"`
	Medium               string   `json:"medium"`
	Technique            string   `json:"technique"`
	Dimensions           string   `json:"dimensions"`
	Culture              string   `json:"culture"`
	Period               string   `json:"period"`
	Provenance           string   `json:"provenance"`
	Creditline           string   `json:"creditline"`
	Department           string   `json:"department"`
	Division             string   `json:"division"`
	Copyright            string   `json:"copyright"`
	Description          string   `json:"description"`
	VerificationLevel    int      `json:"verificationlevel"`
	ImagePermissionLevel int      `json:"imagepermissionlevel"`
	AccessLevel          int      `json:"accesslevel"`
	URL                  string   `json:"url"`
	PrimaryImageURL      string   `json:"primaryimageurl"`
	People               []Person `json:"people,omitempty"`
	Images               []Image  `json:"images,omitempty"`
}

type Person struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Image struct {
	IIIFBaseURI string `json:"iiifbaseuri"`
}

// Artist picks the credited artist, preferring the person with the Artist
// role and falling back to the first listed person.
func (o *Object) Artist() string {
	for _, person := range o.People {
		if person.Role == "Artist" && person.Name != "" {
			return person.Name
		}
	}
	if len(o.People) > 0 {
		return o.People[0].Name
	}
	return ""
}

func (o *Object) iiifBaseURI() string {
	if len(o.Images) > 0 {
		return o.Images[0].IIIFBaseURI
	}
	return ""
}

// SearchResult is the slim shape returned to the search suggestion endpoint.
type SearchResult struct {
	ID                   int     `json:"id"`
	ObjectNumber         string  `json:"objectNumber"`
	Title                string  `json:"title"`
	Artist               string  `json:"artist"`
	Dated                string  `json:"dated"`
	Classification       string  `json:"classification"`
	Medium               string  `json:"medium"`
	Culture              string  `json:"culture"`
	ThumbnailURL         *string `json:"thumbnailUrl"`
	HarvardURL           string  `json:"harvardUrl"`
	ImagePermissionLevel int     `json:"imagePermissionLevel"`
	PermissionText       string  `json:"permissionText"`
	CanDisplayImage      bool    `json:"canDisplayImage"`
}

type searchResponse struct {
	Records []Object `json:"records"`
}

// SearchObjects searches the catalog by keyword. A purely numeric query is
// first tried as an exact object id.
func (c *Client) SearchObjects(query string, size int) ([]SearchResult, error) {
	if id, err := strconv.Atoi(query); err == nil {
		obj, err := c.GetObjectByID(id)
		if err == nil {
			return []SearchResult{formatSearchResult(obj)}, nil
		}
		if !errors.Is(err, ErrObjectNotFound) {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("size", strconv.Itoa(size))
	params.Set("keyword", query)
	// Only return objects that have an image
	params.Set("hasimage", "1")

	resp, err := c.httpClient.Get(c.baseURL + "/object?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("harvard api search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("harvard api search: unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("harvard api search: decoding response: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.Records))
	for i := range payload.Records {
		results = append(results, formatSearchResult(&payload.Records[i]))
	}
	return results, nil
}

// GetObjectByID fetches a full catalog record.
func (c *Client) GetObjectByID(objectID int) (*Object, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Get(fmt.Sprintf("%s/object/%d?%s", c.baseURL, objectID, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("harvard api fetch object %d: %w", objectID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrObjectNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("harvard api fetch object %d: unexpected status %d", objectID, resp.StatusCode)
	}

	var obj Object
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return nil, fmt.Errorf("harvard api fetch object %d: decoding response: %w", objectID, err)
	}
	return &obj, nil
}

func formatSearchResult(obj *Object) SearchResult {
	result := SearchResult{
		ID:                   obj.ObjectID,
		ObjectNumber:         obj.ObjectNumber,
		Title:                titleOrUntitled(obj.Title),
		Artist:               obj.Artist(),
		Dated:                obj.Dated,
		Classification:       obj.Classification,
		Medium:               obj.Medium,
		Culture:              obj.Culture,
		HarvardURL:           obj.URL,
		ImagePermissionLevel: obj.ImagePermissionLevel,
		PermissionText:       PermissionText(obj.ImagePermissionLevel),
		CanDisplayImage:      obj.ImagePermissionLevel < PermissionNoDisplay,
	}
	if result.Artist == "" {
		result.Artist = "Unknown Artist"
	}

	if obj.ImagePermissionLevel < PermissionNoDisplay && obj.PrimaryImageURL != "" {
		thumbnail := obj.PrimaryImageURL
		if iiif := obj.iiifBaseURI(); iiif != "" {
			maxSize := 200
			if obj.ImagePermissionLevel == PermissionLimited {
				maxSize = limitedMaxSize
			}
			thumbnail = iiifURL(iiif, maxSize)
		}
		result.ThumbnailURL = &thumbnail
	}
	return result
}

func titleOrUntitled(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}

// ExtractArtifactData maps a catalog record onto an artifact for insertion.
// The image stays remote; ImagePath gets a placeholder value.
func ExtractArtifactData(obj *Object) models.ArtifactModel {
	now := time.Now()
	artifact := models.ArtifactModel{
		Title:                titleOrUntitled(obj.Title),
		ImagePath:            "harvard_placeholder.jpg",
		HarvardObjectID:      &obj.ObjectID,
		HarvardObjectNumber:  optional(obj.ObjectNumber),
		Classification:       optional(obj.Classification),
		Dated:                optional(obj.Dated),
		Century:              optional(obj.Century),
		Technique:            optional(obj.Technique),
		Dimensions:           optional(obj.Dimensions),
		Provenance:           optional(obj.Provenance),
		Creditline:           optional(obj.Creditline),
		Department:           optional(obj.Department),
		Division:             optional(obj.Division),
		Copyright:            optional(obj.Copyright),
		Culture:              optional(obj.Culture),
		Period:               optional(obj.Period),
		Medium:               optional(obj.Medium),
		Description:          optional(obj.Description),
		ImagePermissionLevel: obj.ImagePermissionLevel,
		AccessLevel:          obj.AccessLevel,
		HarvardURL:           optional(obj.URL),
		PrimaryImageURL:      optional(obj.PrimaryImageURL),
		IIIFBaseURI:          optional(obj.iiifBaseURI()),
		LastAPISync:          &now,
	}

	if artist := obj.Artist(); artist != "" {
		artifact.Artist = &artist
	}
	if obj.DateBegin != 0 {
		artifact.DateBegin = &obj.DateBegin
	}
	if obj.DateEnd != 0 {
		artifact.DateEnd = &obj.DateEnd
	}
	if obj.VerificationLevel != 0 {
		artifact.VerificationLevel = &obj.VerificationLevel
	}

	museum := extractMuseum(obj.Creditline)
	artifact.Museum = &museum
	return artifact
}

// extractMuseum pulls the holding museum out of the credit line, e.g.
// "Harvard Art Museums/Fogg Museum, Bequest of ..." -> "Fogg Museum".
func extractMuseum(creditline string) string {
	museum := "Harvard Art Museums"
	if idx := strings.Index(creditline, "Harvard Art Museums/"); idx >= 0 {
		rest := creditline[idx+len("Harvard Art Museums/"):]
		if comma := strings.Index(rest, ","); comma >= 0 {
			rest = rest[:comma]
		}
		if rest = strings.TrimSpace(rest); rest != "" {
			museum = rest
		}
	}
	return museum
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
