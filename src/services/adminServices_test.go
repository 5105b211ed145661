package services

import (
	"testing"

	"github.com/DiffusedRelics/Relics-Backend/src/middleware"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticate(t *testing.T) {
	middleware.SetSecretKey("test-secret")

	db := newTestDB(t)
	service := NewAdminService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AdminModel{Username: "admin", PasswordHash: string(hash)}).Error)

	token, err := service.Authenticate("admin", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin", claims["username"])
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	middleware.SetSecretKey("test-secret")

	db := newTestDB(t)
	service := NewAdminService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AdminModel{Username: "admin", PasswordHash: string(hash)}).Error)

	_, err = service.Authenticate("admin", "wrong")
	assert.EqualError(t, err, "invalid username or password")

	_, err = service.Authenticate("nobody", "hunter2")
	assert.EqualError(t, err, "invalid username or password")
}
