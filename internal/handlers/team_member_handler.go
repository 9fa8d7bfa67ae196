package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/httpresp"
	"github.com/keechi-app/keechi-api/internal/models"
)

type TeamMemberHandler struct {
	db *gorm.DB
}

func NewTeamMemberHandler(db *gorm.DB) *TeamMemberHandler {
	return &TeamMemberHandler{db: db}
}

type CreateTeamMemberRequest struct {
	Name        string   `json:"name" binding:"required"`
	Role        string   `json:"role"`
	Bio         string   `json:"bio"`
	Specialties []string `json:"specialties"`
	ImageUrl    string   `json:"imageUrl"`
}

type UpdateTeamMemberRequest struct {
	Name        *string   `json:"name"`
	Role        *string   `json:"role"`
	Bio         *string   `json:"bio"`
	Specialties *[]string `json:"specialties"`
	ImageUrl    *string   `json:"imageUrl"`
	IsActive    *bool     `json:"isActive"`
}

// ListByShop returns a shop's active team members. Public.
func (h *TeamMemberHandler) ListByShop(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_shop_id", "shopId must be numeric.")
		return
	}

	var members []models.TeamMember
	if err := h.db.
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Find(&members).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list team members.")
		return
	}

	httpresp.OK(c, members)
}

// MyTeam returns every member of the owner's shop, newest first, including
// inactive ones.
func (h *TeamMemberHandler) MyTeam(c *gin.Context) {
	shop, ok := ownerShopFor(h.db, c)
	if !ok {
		return
	}

	var members []models.TeamMember
	if err := h.db.
		Where("shop_id = ?", shop.ID).
		Order("created_at DESC").
		Find(&members).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list team members.")
		return
	}

	c.JSON(http.StatusOK, members)
}

func (h *TeamMemberHandler) Create(c *gin.Context) {
	var req CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	shop, ok := ownerShopFor(h.db, c)
	if !ok {
		return
	}

	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	member := models.TeamMember{
		ShopID:      shop.ID,
		Name:        req.Name,
		Role:        req.Role,
		Bio:         req.Bio,
		Specialties: specialties,
		ImageUrl:    req.ImageUrl,
		IsActive:    true,
	}

	if err := h.db.Create(&member).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create team member.")
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (h *TeamMemberHandler) Update(c *gin.Context) {
	member, ok := h.ownedMember(c)
	if !ok {
		return
	}

	var req UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.ImageUrl != nil {
		updates["image_url"] = *req.ImageUrl
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if req.Specialties != nil {
		member.Specialties = *req.Specialties
		if err := h.db.Model(member).Update("specialties", member.Specialties).Error; err != nil {
			httperr.Internal(c, "update_failed", "Could not update team member.")
			return
		}
	}

	if len(updates) > 0 {
		if err := h.db.Model(member).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Could not update team member.")
			return
		}
	}

	c.JSON(http.StatusOK, member)
}

func (h *TeamMemberHandler) Delete(c *gin.Context) {
	member, ok := h.ownedMember(c)
	if !ok {
		return
	}

	if err := h.db.Delete(member).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Could not delete team member.")
		return
	}

	httpresp.Message(c, "Team member deleted successfully")
}

// --------- helpers ---------

func (h *TeamMemberHandler) ownedMember(c *gin.Context) (*models.TeamMember, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Team member id must be numeric.")
		return nil, false
	}

	shop, ok := ownerShopFor(h.db, c)
	if !ok {
		return nil, false
	}

	var member models.TeamMember
	if err := h.db.First(&member, id).Error; err != nil {
		httperr.NotFound(c, "team_member_not_found", "Team member not found.")
		return nil, false
	}

	if member.ShopID != shop.ID {
		httperr.Forbidden(c, "forbidden", "This team member belongs to another shop.")
		return nil, false
	}

	return &member, true
}
