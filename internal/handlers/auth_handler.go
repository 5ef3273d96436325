package handlers

import (
	"mewayz/internal/services"
	"mewayz/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account with email and password.
func (h *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", result)
}

// Login exchanges email and password for a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &input, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", result)
}

// GoogleAuthURL returns the Google OAuth consent URL for the given state.
func (h *AuthHandler) GoogleAuthURL(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		utils.BadRequestResponse(c, "state is required")
		return
	}

	url := h.authService.GoogleAuthURL(state)
	utils.SuccessResponse(c, "Authorization URL generated", gin.H{"auth_url": url})
}

// GoogleCallback completes the OAuth exchange and signs the user in.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var request struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.authService.GoogleLogin(c.Request.Context(), request.Code, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", result)
}

// RefreshToken issues a fresh token pair from a valid refresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	tokens, err := h.authService.RefreshTokens(c.Request.Context(), request.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Tokens refreshed", tokens)
}

// RegisterDevice stores a push token for the authenticated user.
func (h *AuthHandler) RegisterDevice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request struct {
		Token    string `json:"token" binding:"required"`
		Platform string `json:"platform" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.RegisterDevice(c.Request.Context(), userID, request.Token, request.Platform); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Device registered", nil)
}
