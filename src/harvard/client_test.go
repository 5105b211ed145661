package harvard

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const objectJSON = `{
	"objectid": 123456,
	"objectnumber": "1920.44",
	"title": "Attic Vase",
	"dated": "5th century BCE",
	"datebegin": -500,
	"dateend": -400,
	"century": "5th century BCE",
	"classification": "Vessels",
	"medium": "Terracotta",
	"culture": "Greek",
	"creditline": "Harvard Art Museums/Arthur M. Sackler Museum, Bequest of David M. Robinson",
	"imagepermissionlevel": 0,
	"accesslevel": 1,
	"url": "https://www.harvardartmuseums.org/collections/object/123456",
	"primaryimageurl": "https://nrs.harvard.edu/urn-3:HUAM:123456",
	"people": [
		{"name": "Workshop of Exekias", "role": "Workshop"},
		{"name": "Exekias", "role": "Artist"}
	],
	"images": [{"iiifbaseuri": "https://ids.lib.harvard.edu/ids/iiif/400098"}]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key")
	client.SetBaseURL(server.URL)
	return client
}

func TestGetObjectByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/object/123456", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, objectJSON)
	})

	obj, err := client.GetObjectByID(123456)
	require.NoError(t, err)
	assert.Equal(t, 123456, obj.ObjectID)
	assert.Equal(t, "Attic Vase", obj.Title)
	assert.Equal(t, "Exekias", obj.Artist())
}

func TestGetObjectByIDNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetObjectByID(999)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestSearchObjectsKeyword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/object", r.URL.Path)
		assert.Equal(t, "vase", r.URL.Query().Get("keyword"))
		assert.Equal(t, "1", r.URL.Query().Get("hasimage"))
		fmt.Fprintf(w, `{"records": [%s]}`, objectJSON)
	})

	results, err := client.SearchObjects("vase", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 123456, results[0].ID)
	assert.Equal(t, "Exekias", results[0].Artist)
	assert.True(t, results[0].CanDisplayImage)
	require.NotNil(t, results[0].ThumbnailURL)
	assert.Equal(t, "https://ids.lib.harvard.edu/ids/iiif/400098/full/200,/0/default.jpg", *results[0].ThumbnailURL)
}

func TestSearchObjectsNumericQueryTriesExactID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/object/123456", r.URL.Path)
		fmt.Fprint(w, objectJSON)
	})

	results, err := client.SearchObjects("123456", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 123456, results[0].ID)
}

func TestNewClientFromEnvWithoutKey(t *testing.T) {
	t.Setenv("HARVARD_API_KEY", "")

	_, err := NewClientFromEnv()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestExtractArtifactData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, objectJSON)
	})

	obj, err := client.GetObjectByID(123456)
	require.NoError(t, err)

	artifact := ExtractArtifactData(obj)
	assert.Equal(t, "Attic Vase", artifact.Title)
	assert.Equal(t, "harvard_placeholder.jpg", artifact.ImagePath)
	require.NotNil(t, artifact.HarvardObjectID)
	assert.Equal(t, 123456, *artifact.HarvardObjectID)
	require.NotNil(t, artifact.Artist)
	assert.Equal(t, "Exekias", *artifact.Artist)
	require.NotNil(t, artifact.Museum)
	assert.Equal(t, "Arthur M. Sackler Museum", *artifact.Museum)
	require.NotNil(t, artifact.IIIFBaseURI)
	assert.Equal(t, "https://ids.lib.harvard.edu/ids/iiif/400098", *artifact.IIIFBaseURI)
	require.NotNil(t, artifact.DateBegin)
	assert.Equal(t, -500, *artifact.DateBegin)
	require.NotNil(t, artifact.LastAPISync)
	assert.True(t, artifact.IsHarvardImport())
}

func TestExtractArtifactDataUntitled(t *testing.T) {
	obj := &Object{ObjectID: 7}
	artifact := ExtractArtifactData(obj)
	assert.Equal(t, "Untitled", artifact.Title)
	require.NotNil(t, artifact.Museum)
	assert.Equal(t, "Harvard Art Museums", *artifact.Museum)
}
