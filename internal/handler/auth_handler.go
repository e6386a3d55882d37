package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/internal/utils"
)

// AuthHandler serves admin login.
type AuthHandler struct {
	adminAuth *service.AdminAuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(adminAuth *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{adminAuth: adminAuth}
}

// Login handles POST /v1/admin/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		utils.Error(c, 400, "MISSING_FIELDS", "email and password are required")
		return
	}

	token, err := h.adminAuth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrAdminDisabled) {
			utils.Error(c, 503, "ADMIN_DISABLED", "Admin access is not configured")
			return
		}
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	utils.Success(c, 200, "Login successful", gin.H{"token": token})
}
