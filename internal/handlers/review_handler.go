package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/audit"
	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/httpresp"
	"github.com/keechi-app/keechi-api/internal/middleware"
	"github.com/keechi-app/keechi-api/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, ad *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, audit: ad}
}

type CreateReviewRequest struct {
	ShopID       uint   `json:"shopId" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Title        string `json:"title"`
	Text         string `json:"text" binding:"required"`
	TeamMemberID *uint  `json:"teamMemberId"`
}

// List returns a shop's reviews newest-first, with the rating aggregate and
// a 1..5 star histogram.
func (h *ReviewHandler) List(c *gin.Context) {
	shopIDStr := c.Query("shopId")
	if shopIDStr == "" {
		httperr.BadRequest(c, "missing_shop_id", "shopId is required.")
		return
	}

	shopID, err := strconv.Atoi(shopIDStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_shop_id", "shopId must be numeric.")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Preload("User").
		Preload("TeamMember").
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list reviews.")
		return
	}

	avg := 0.0
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
			if r.Rating >= 1 && r.Rating <= 5 {
				distribution[r.Rating]++
			}
		}
		avg = roundRating(float64(sum) / float64(len(reviews)))
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":            reviews,
		"averageRating":      avg,
		"totalReviews":       len(reviews),
		"ratingDistribution": distribution,
	})
}

// Create adds or replaces the caller's review of a shop. Gated on having a
// Completed appointment there; one review per (user, shop).
func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	userID := c.GetUint(middleware.ContextUserID)

	var completed int64
	h.db.Model(&models.Appointment{}).
		Where("user_id = ? AND shop_id = ? AND status = ?",
			userID, req.ShopID, string(domain.StatusCompleted)).
		Count(&completed)

	if completed == 0 {
		httperr.Forbidden(c, "no_completed_appointment",
			"You can only review shops where you've completed an appointment.")
		return
	}

	var existing models.Review
	err := h.db.
		Where("user_id = ? AND shop_id = ?", userID, req.ShopID).
		First(&existing).Error

	if err == nil {
		updates := map[string]any{
			"rating": req.Rating,
			"title":  req.Title,
			"text":   req.Text,
		}
		if req.TeamMemberID != nil {
			updates["team_member_id"] = *req.TeamMemberID
		}

		if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Could not update review.")
			return
		}

		h.refreshShopRating(req.ShopID)

		var updated models.Review
		h.db.Preload("User").First(&updated, existing.ID)
		c.JSON(http.StatusOK, updated)
		return
	}

	if err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "internal_error", "Could not look up review.")
		return
	}

	review := models.Review{
		UserID:       userID,
		ShopID:       req.ShopID,
		Rating:       req.Rating,
		Title:        req.Title,
		Text:         req.Text,
		TeamMemberID: req.TeamMemberID,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create review.")
		return
	}

	h.refreshShopRating(req.ShopID)

	h.audit.Dispatch(audit.Event{
		ShopID:   req.ShopID,
		UserID:   &userID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
	})

	var created models.Review
	h.db.Preload("User").First(&created, review.ID)
	c.JSON(http.StatusCreated, created)
}

// Delete removes the caller's own review and recomputes the shop aggregate.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Review id must be numeric.")
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	if review.UserID != userID {
		httperr.Forbidden(c, "forbidden", "You can only delete your own reviews.")
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Could not delete review.")
		return
	}

	h.refreshShopRating(review.ShopID)

	h.audit.Dispatch(audit.Event{
		ShopID:   review.ShopID,
		UserID:   &userID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &review.ID,
	})

	httpresp.Message(c, "Review deleted successfully")
}

// refreshShopRating recomputes the denormalized aggregate on the shop row.
func (h *ReviewHandler) refreshShopRating(shopID uint) {
	var reviews []models.Review
	if err := h.db.Where("shop_id = ?", shopID).Find(&reviews).Error; err != nil {
		return
	}

	avg := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg = roundRating(float64(sum) / float64(len(reviews)))
	}

	h.db.Model(&models.Shop{}).
		Where("id = ?", shopID).
		Updates(map[string]any{
			"rating":       avg,
			"review_count": len(reviews),
		})
}

// roundRating keeps one decimal, matching what clients render.
func roundRating(v float64) float64 {
	rounded, _ := strconv.ParseFloat(fmt.Sprintf("%.1f", v), 64)
	return rounded
}
