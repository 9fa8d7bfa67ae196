package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/keechi-app/keechi-api/internal/config"
	"github.com/keechi-app/keechi-api/internal/httperr"
)

type AdminHandler struct {
	config *config.Config
}

func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{config: cfg}
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// adminPayload is the fixed identity the console renders; there is no admin
// row in the database.
func adminPayload() gin.H {
	return gin.H{
		"id":    "admin",
		"role":  "admin",
		"email": "admin@keechi.com",
		"name":  "Keechi Admin",
	}
}

// Login trades the configured admin password for a short-lived admin token.
func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Password required.")
		return
	}

	if h.config.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.config.AdminPassword)) != 1 {
		httperr.Unauthorized(c, "invalid_password", "Invalid password.")
		return
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(h.config.JWTSecret))
	if err != nil {
		httperr.Internal(c, "token_failed", "Could not generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"admin":   adminPayload(),
		"message": "Login successful",
	})
}

// Verify confirms the bearer token still carries the admin role. The actual
// check lives in the RequireAdmin middleware; reaching here means it passed.
func (h *AdminHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin":   adminPayload(),
		"message": "Token valid",
	})
}
