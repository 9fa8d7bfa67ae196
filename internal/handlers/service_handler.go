package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/audit"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/httpresp"
	"github.com/keechi-app/keechi-api/internal/middleware"
	"github.com/keechi-app/keechi-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, ad *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: ad}
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Duration    int     `json:"duration" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
}

// List returns all services, optionally filtered by shopId.
func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Preload("Shop")

	if shopID := c.Query("shopId"); shopID != "" {
		id, err := strconv.Atoi(shopID)
		if err != nil {
			httperr.BadRequest(c, "invalid_shop_id", "shopId must be numeric.")
			return
		}
		q = q.Where("shop_id = ?", id)
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list services.")
		return
	}

	httpresp.OK(c, services)
}

// MyServices returns the catalog of the authenticated owner's shop.
func (h *ServiceHandler) MyServices(c *gin.Context) {
	shop, ok := ownerShopFor(h.db, c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.Where("shop_id = ?", shop.ID).Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	shop, ok := ownerShopFor(h.db, c)
	if !ok {
		return
	}

	service := models.Service{
		ShopID:      shop.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create service.")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	h.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		UserID:   &userID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Duration != nil {
		if *req.Duration < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be at least one minute.")
			return
		}
		updates["duration"] = *req.Duration
	}

	if len(updates) > 0 {
		if err := h.db.Model(service).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Could not update service.")
			return
		}
	}

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	if err := h.db.Delete(service).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Could not delete service.")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	h.audit.Dispatch(audit.Event{
		ShopID:   service.ShopID,
		UserID:   &userID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.Message(c, "Service deleted successfully")
}

// --------- helpers ---------

func (h *ServiceHandler) ownedService(c *gin.Context) (*models.Service, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return nil, false
	}

	var service models.Service
	if err := h.db.Preload("Shop").First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return nil, false
	}

	if service.Shop == nil || service.Shop.OwnerID != c.GetUint(middleware.ContextUserID) {
		httperr.Forbidden(c, "forbidden", "You do not own this service.")
		return nil, false
	}

	return &service, true
}
