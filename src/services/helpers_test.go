package services

import (
	"testing"

	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ArtifactModel{}, &models.InterpolationModel{}, &models.AdminModel{})
	require.NoError(t, err)

	return db
}

func createTestArtifact(t *testing.T, db *gorm.DB, id int, title string) *models.ArtifactModel {
	t.Helper()

	artifact := models.ArtifactModel{ID: id, Title: title, ImagePath: "artifacts/test.jpg"}
	require.NoError(t, db.Create(&artifact).Error)
	return &artifact
}
