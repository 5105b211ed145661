package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/DiffusedRelics/Relics-Backend/src/middleware"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	middleware.SetSecretKey("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ArtifactModel{}, &models.InterpolationModel{}, &models.AdminModel{}))

	artifactService := services.NewArtifactService(db)
	interpolationService := services.NewInterpolationService(db)
	adminService := services.NewAdminService(db)

	router := gin.New()
	SetupGalleryRoutes(router, artifactService, interpolationService)
	SetupAuthRoutes(router, adminService)
	SetupArtifactRoutes(router, artifactService, interpolationService, nil, nil)
	SetupInterpolationRoutes(router, interpolationService, artifactService)
	SetupHarvardRoutes(router, nil)

	return router, db
}

func doRequest(router *gin.Engine, method, target string, form url.Values, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func seedAdmin(t *testing.T, db *gorm.DB) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AdminModel{Username: "admin", PasswordHash: string(hash)}).Error)
}

func loginToken(t *testing.T, router *gin.Engine) string {
	t.Helper()

	form := url.Values{"username": {"admin"}, "password": {"admin123"}}
	recorder := doRequest(router, http.MethodPost, "/login", form, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestIndexGroupsInterpolationsByPair(t *testing.T) {
	router, db := newTestServer(t)

	require.NoError(t, db.Create(&models.ArtifactModel{ID: 1, Title: "Vase", ImagePath: "artifacts/vase.jpg"}).Error)
	require.NoError(t, db.Create(&models.ArtifactModel{ID: 2, Title: "Urn", ImagePath: "artifacts/urn.jpg"}).Error)

	_, err := services.NewInterpolationService(db).CreateInterpolation(nil, nil, "interpolations/blend.jpg", []models.SourceRef{
		{ArtifactID: 1, Weight: 25},
		{ArtifactID: 2, Weight: 75},
	})
	require.NoError(t, err)

	recorder := doRequest(router, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Artifacts      []json.RawMessage `json:"artifacts"`
		Interpolations []json.RawMessage `json:"interpolations"`
		Paired         []struct {
			ArtifactLow struct {
				ID    int    `json:"id"`
				Title string `json:"title"`
			} `json:"artifactLow"`
			ArtifactHigh struct {
				ID    int    `json:"id"`
				Title string `json:"title"`
			} `json:"artifactHigh"`
			Interpolations []struct {
				Position float64 `json:"position"`
			} `json:"interpolations"`
		} `json:"pairedInterpolations"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	assert.Len(t, payload.Artifacts, 2)
	assert.Len(t, payload.Interpolations, 1)

	require.Len(t, payload.Paired, 1)
	assert.Equal(t, 1, payload.Paired[0].ArtifactLow.ID)
	assert.Equal(t, "Vase", payload.Paired[0].ArtifactLow.Title)
	assert.Equal(t, 2, payload.Paired[0].ArtifactHigh.ID)
	assert.Equal(t, "Urn", payload.Paired[0].ArtifactHigh.Title)
	require.Len(t, payload.Paired[0].Interpolations, 1)
	assert.InDelta(t, 75, payload.Paired[0].Interpolations[0].Position, 1e-9)
}

func TestMutatingRoutesRequireAdminToken(t *testing.T) {
	router, _ := newTestServer(t)

	protected := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/upload/artifact"},
		{http.MethodPost, "/upload/artifact"},
		{http.MethodPost, "/upload/artifacts/excel"},
		{http.MethodPost, "/edit/artifact/1"},
		{http.MethodGet, "/delete/artifact/1"},
		{http.MethodGet, "/upload/interpolation"},
		{http.MethodPost, "/upload/interpolation"},
		{http.MethodGet, "/delete/interpolation/1"},
	}
	for _, route := range protected {
		recorder := doRequest(router, route.method, route.target, nil, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", route.method, route.target)
	}

	recorder := doRequest(router, http.MethodGet, "/upload/artifact", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLoginLogoutFlow(t *testing.T) {
	router, db := newTestServer(t)
	seedAdmin(t, db)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	recorder := doRequest(router, http.MethodPost, "/login", form, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token := loginToken(t, router)

	recorder = doRequest(router, http.MethodGet, "/upload/interpolation", nil, token)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/logout", nil, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestEditArtifactFlow(t *testing.T) {
	router, db := newTestServer(t)
	seedAdmin(t, db)
	token := loginToken(t, router)

	require.NoError(t, db.Create(&models.ArtifactModel{ID: 1, Title: "Vase", ImagePath: "artifacts/vase.jpg"}).Error)

	form := url.Values{"title": {"Amphora"}, "culture": {"Greek"}}
	recorder := doRequest(router, http.MethodPost, "/edit/artifact/1", form, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var artifact models.ArtifactModel
	require.NoError(t, db.First(&artifact, 1).Error)
	assert.Equal(t, "Amphora", artifact.Title)
	require.NotNil(t, artifact.Culture)
	assert.Equal(t, "Greek", *artifact.Culture)

	// empty title is rejected and nothing changes
	form = url.Values{"title": {""}}
	recorder = doRequest(router, http.MethodPost, "/edit/artifact/1", form, token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteArtifactConflict(t *testing.T) {
	router, db := newTestServer(t)
	seedAdmin(t, db)
	token := loginToken(t, router)

	require.NoError(t, db.Create(&models.ArtifactModel{ID: 1, Title: "Vase", ImagePath: "artifacts/vase.jpg"}).Error)
	require.NoError(t, db.Create(&models.ArtifactModel{ID: 2, Title: "Urn", ImagePath: "artifacts/urn.jpg"}).Error)

	interpolation, err := services.NewInterpolationService(db).CreateInterpolation(nil, nil, "interpolations/blend.jpg", []models.SourceRef{
		{ArtifactID: 1, Weight: 50},
		{ArtifactID: 2, Weight: 50},
	})
	require.NoError(t, err)

	recorder := doRequest(router, http.MethodGet, "/delete/artifact/1", nil, token)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/delete/interpolation/"+itoa(interpolation.ID), nil, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/delete/artifact/1", nil, token)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/view/artifact/1", nil, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestViewInterpolationShowsSourcesWithWeights(t *testing.T) {
	router, db := newTestServer(t)

	require.NoError(t, db.Create(&models.ArtifactModel{ID: 1, Title: "Vase", ImagePath: "artifacts/vase.jpg"}).Error)
	require.NoError(t, db.Create(&models.ArtifactModel{ID: 2, Title: "Urn", ImagePath: "artifacts/urn.jpg"}).Error)

	interpolation, err := services.NewInterpolationService(db).CreateInterpolation(nil, nil, "interpolations/blend.jpg", []models.SourceRef{
		{ArtifactID: 2, Weight: 60},
		{ArtifactID: 1, Weight: 40},
	})
	require.NoError(t, err)

	recorder := doRequest(router, http.MethodGet, "/view/interpolation/"+itoa(interpolation.ID), nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		SourceArtifacts []struct {
			ID     int     `json:"id"`
			Weight float64 `json:"weight"`
		} `json:"sourceArtifacts"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	// order follows the recorded source sequence
	require.Len(t, payload.SourceArtifacts, 2)
	assert.Equal(t, 2, payload.SourceArtifacts[0].ID)
	assert.InDelta(t, 60, payload.SourceArtifacts[0].Weight, 1e-9)
	assert.Equal(t, 1, payload.SourceArtifacts[1].ID)
	assert.InDelta(t, 40, payload.SourceArtifacts[1].Weight, 1e-9)
}

func TestHarvardProxyUnavailableWithoutClient(t *testing.T) {
	router, _ := newTestServer(t)

	recorder := doRequest(router, http.MethodGet, "/api/search?q=vase", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	// short queries short-circuit before the client is touched
	recorder = doRequest(router, http.MethodGet, "/api/search?q=v", nil, "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/api/artifact/123", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	recorder := doRequest(router, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.NotEmpty(t, payload["timestamp"])
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
