package controllers

import (
	"net/http"

	"github.com/DiffusedRelics/Relics-Backend/src/models"
	"github.com/DiffusedRelics/Relics-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	service *services.AdminService
}

func NewAuthController(service *services.AdminService) *AuthController {
	return &AuthController{service: service}
}

// LoginPage handles GET requests to the login endpoint
func (ac *AuthController) LoginPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "POST username and password to obtain a token"})
}

// Login checks admin credentials and returns a bearer token
func (ac *AuthController) Login(ctx *gin.Context) {
	var request models.LoginRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := ac.service.Authenticate(request.Username, request.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"username": request.Username,
		"token":    token,
	})
}

// Logout acknowledges the logout; the token is the whole session state, so
// the client simply discards it.
func (ac *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "You have been logged out"})
}
