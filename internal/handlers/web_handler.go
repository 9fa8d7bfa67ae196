package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/models"
)

type WebHandler struct {
	db *gorm.DB
}

func NewWebHandler(db *gorm.DB) *WebHandler {
	return &WebHandler{db: db}
}

// ShowShopPage renders the public booking page for one shop, with optional
// service filtering and sorting.
func (h *WebHandler) ShowShopPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid shop id.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		c.String(http.StatusNotFound, "Shop not found.")
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	sort := strings.ToLower(strings.TrimSpace(c.Query("sort")))
	minPriceStr := c.Query("min_price")
	maxPriceStr := c.Query("max_price")

	q := h.db.Where("shop_id = ?", shop.ID)

	if minPriceStr != "" {
		if minPrice, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
			q = q.Where("price >= ?", minPrice)
		} else {
			c.String(http.StatusBadRequest, "Invalid min_price.")
			return
		}
	}

	if maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			q = q.Where("price <= ?", maxPrice)
		} else {
			c.String(http.StatusBadRequest, "Invalid max_price.")
			return
		}
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	orderClause := "id ASC"
	switch sort {
	case "price_asc":
		orderClause = "price ASC"
	case "price_desc":
		orderClause = "price DESC"
	case "duration_asc":
		orderClause = "duration ASC"
	case "duration_desc":
		orderClause = "duration DESC"
	}

	var services []models.Service
	if err := q.Order(orderClause).Find(&services).Error; err != nil {
		c.String(http.StatusInternalServerError, "Could not load services.")
		return
	}

	var team []models.TeamMember
	h.db.Where("shop_id = ? AND is_active = ?", shop.ID, true).Find(&team)

	c.HTML(http.StatusOK, "shop.html", gin.H{
		"Shop":     shop,
		"Services": services,
		"Team":     team,
		"CurrentFilters": gin.H{
			"query":     query,
			"sort":      sort,
			"min_price": minPriceStr,
			"max_price": maxPriceStr,
		},
	})
}
