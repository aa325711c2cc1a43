package handler

import (
	"github.com/bukusaku/bukusaku-api/internal/application/service"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/request"
	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles unlocking the app with the shop passphrase
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.Passphrase)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", output)
}

// Logout ends the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(GetSession(c))
	response.OK(c, "Logout successful", nil)
}
