package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/astraautomax/automax-backend/models"
	"github.com/astraautomax/automax-backend/services"
	"github.com/gin-gonic/gin"
)

// Login godoc
// @Summary Admin login
// @Description Exchanges admin credentials for a signed token valid for one hour.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Admin email and password"
// @Success 200 {object} map[string]interface{} "Token and expiresIn"
// @Failure 400 {object} map[string]string "Email and password are required"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	token, err := h.auth.Login(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		internalError(c, "error during login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(services.TokenTTL.Seconds()),
	})
}
