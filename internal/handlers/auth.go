package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hooiv/foodorder/config"
	"github.com/hooiv/foodorder/internal/middleware"
	"github.com/hooiv/foodorder/internal/services"
	"github.com/hooiv/foodorder/internal/utils"
)

type AuthHandler struct {
	users *services.UsersService
	auth  config.AuthConfig
}

func NewAuthHandler(users *services.UsersService, auth config.AuthConfig) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      interface{} `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(c, err)
		return
	}

	token, expiresAt, err := utils.GenerateToken(*user, []byte(h.auth.JWTSecret), h.auth.TokenTTL)
	if err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "Login successful", loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Profile returns the authenticated user's own record.
func (h *AuthHandler) Profile(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Authentication required"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), identity.Email)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Profile fetched successfully", user)
}
