package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/middleware"
	"github.com/keechi-app/keechi-api/internal/models"
)

// ownerShopFor loads the authenticated owner's shop, writing a 404 when the
// account has none.
func ownerShopFor(db *gorm.DB, c *gin.Context) (*models.Shop, bool) {
	userID := c.GetUint(middleware.ContextUserID)

	var shop models.Shop
	if err := db.Where("owner_id = ?", userID).First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "No shop registered for this account.")
		return nil, false
	}
	return &shop, true
}
