package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/config"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/middleware"
	"github.com/keechi-app/keechi-api/internal/models"
	"github.com/keechi-app/keechi-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type UserSignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type ShopSignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	ShopName        string `json:"shopName" binding:"required"`
	ShopAddress     string `json:"shopAddress" binding:"required"`
	ShopDescription string `json:"shopDescription"`
	ShopImage       string `json:"shopImage"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) UserSignup(c *gin.Context) {
	var req UserSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_taken", "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_failed", "Could not process password.")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		Phone:    req.Phone,
		Role:     models.RoleUser,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create user.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "token_failed", "Could not generate token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    userPayload(&user),
	})
}

func (h *AuthHandler) UserLogin(c *gin.Context) {
	h.login(c, models.RoleUser)
}

func (h *AuthHandler) ShopSignup(c *gin.Context) {
	var req ShopSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_taken", "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_failed", "Could not process password.")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		Phone:    req.Phone,
		Role:     models.RoleShopOwner,
	}

	var shop models.Shop

	// Owner and shop are created together or not at all.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		shop = models.Shop{
			OwnerID:     user.ID,
			Name:        req.ShopName,
			Address:     req.ShopAddress,
			Description: req.ShopDescription,
			ImageUrl:    req.ShopImage,
			Phone:       req.Phone,
		}
		return tx.Create(&shop).Error
	})
	if err != nil {
		httperr.Internal(c, "create_failed", "Could not create shop owner.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "token_failed", "Could not generate token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shop registered successfully",
		"token":   token,
		"user":    userPayload(&user),
		"shop": gin.H{
			"id":      shop.ID,
			"name":    shop.Name,
			"address": shop.Address,
		},
	})
}

func (h *AuthHandler) ShopLogin(c *gin.Context) {
	h.login(c, models.RoleShopOwner)
}

func (h *AuthHandler) login(c *gin.Context, role string) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not look up user.")
		return
	}

	if user.Role != role {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "token_failed", "Could not generate token.")
		return
	}

	resp := gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(&user),
	}

	if role == models.RoleShopOwner {
		var shop models.Shop
		if err := h.db.Where("owner_id = ?", user.ID).First(&shop).Error; err == nil {
			resp["shop"] = gin.H{
				"id":      shop.ID,
				"name":    shop.Name,
				"address": shop.Address,
			}
		} else {
			resp["shop"] = nil
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.Preload("Shop").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var appointments []models.Appointment
	h.db.Preload("Service").Preload("Shop").
		Where("user_id = ?", userID).
		Find(&appointments)

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"appointments": appointments,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}
