package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keechi-app/keechi-api/internal/cache"
	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	usecase "github.com/keechi-app/keechi-api/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	uc    *usecase.GetAvailability
	cache *cache.AvailabilityCache
}

func NewAvailabilityHandler(uc *usecase.GetAvailability, c *cache.AvailabilityCache) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc, cache: c}
}

// Get returns the slot grid for ?shopId=&serviceId=&date=YYYY-MM-DD. Cached
// per (shop, service, day); appointment writes invalidate the key.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	shopIDStr := c.Query("shopId")
	serviceIDStr := c.Query("serviceId")
	dateStr := c.Query("date")

	if shopIDStr == "" || serviceIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "shopId, serviceId and date are required.")
		return
	}

	shopID, err := strconv.Atoi(shopIDStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_shop_id", "shopId must be numeric.")
		return
	}

	serviceID, err := strconv.Atoi(serviceIDStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "serviceId must be numeric.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	ctx := c.Request.Context()

	if payload := h.cache.Get(ctx, uint(shopID), uint(serviceID), dateStr); payload != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	day, err := h.uc.Execute(ctx, domain.AvailabilityInput{
		ShopID:    uint(shopID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if payload, err := json.Marshal(day); err == nil {
		h.cache.Set(ctx, uint(shopID), uint(serviceID), dateStr, payload)
	}

	c.JSON(http.StatusOK, day)
}
