package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/audit"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/httpresp"
	"github.com/keechi-app/keechi-api/internal/middleware"
	"github.com/keechi-app/keechi-api/internal/models"
	"github.com/keechi-app/keechi-api/internal/storage"
)

type ShopHandler struct {
	db     *gorm.DB
	images storage.ImageStore
	audit  *audit.Dispatcher
}

func NewShopHandler(db *gorm.DB, images storage.ImageStore, ad *audit.Dispatcher) *ShopHandler {
	return &ShopHandler{db: db, images: images, audit: ad}
}

// List returns every shop with its owner contact and service catalog.
func (h *ShopHandler) List(c *gin.Context) {
	var shops []models.Shop
	if err := h.db.
		Preload("Owner").
		Preload("Services").
		Find(&shops).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list shops.")
		return
	}

	httpresp.OK(c, shops)
}

// Get returns one shop with services, reviews and the rating aggregate. Open
// to anonymous callers.
func (h *ShopHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Shop id must be numeric.")
		return
	}

	var shop models.Shop
	if err := h.db.
		Preload("Owner").
		Preload("Services").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User").
		First(&shop, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "shop_not_found", "Shop not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not load shop.")
		return
	}

	avg := 0.0
	if len(shop.Reviews) > 0 {
		sum := 0
		for _, r := range shop.Reviews {
			sum += r.Rating
		}
		avg = roundRating(float64(sum) / float64(len(shop.Reviews)))
	}

	c.JSON(http.StatusOK, shopDetailResponse{
		Shop:          shop,
		AverageRating: avg,
		ReviewCount:   len(shop.Reviews),
	})
}

// shopDetailResponse flattens the rating aggregate into the shop payload.
type shopDetailResponse struct {
	models.Shop
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

type shopUpdateForm struct {
	Name        *string `form:"name"`
	Address     *string `form:"address"`
	Description *string `form:"description"`
	Phone       *string `form:"phone"`
	ImageUrl    *string `form:"imageUrl"`
}

// Update applies owner edits, including multipart coverImage and galleryImages
// uploads (re-encoded to webp before storage).
func (h *ShopHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Shop id must be numeric.")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil || shop.OwnerID != userID {
		httperr.Forbidden(c, "forbidden", "You do not own this shop.")
		return
	}

	var form shopUpdateForm
	if err := c.ShouldBind(&form); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updates := map[string]any{}
	if form.Name != nil {
		updates["name"] = *form.Name
	}
	if form.Address != nil {
		updates["address"] = *form.Address
	}
	if form.Description != nil {
		updates["description"] = *form.Description
	}
	if form.Phone != nil {
		updates["phone"] = *form.Phone
	}
	if form.ImageUrl != nil {
		updates["image_url"] = *form.ImageUrl
	}

	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		if covers := mf.File["coverImage"]; len(covers) > 0 {
			url, err := h.saveUpload(c, covers[0])
			if err != nil {
				httperr.BadRequest(c, "invalid_image", err.Error())
				return
			}
			updates["cover_image"] = url
		}

		if gallery := mf.File["galleryImages"]; len(gallery) > 0 {
			if len(gallery) > 10 {
				httperr.BadRequest(c, "too_many_images", "At most 10 gallery images are allowed.")
				return
			}

			urls := make([]string, 0, len(gallery))
			for _, fh := range gallery {
				url, err := h.saveUpload(c, fh)
				if err != nil {
					httperr.BadRequest(c, "invalid_image", err.Error())
					return
				}
				urls = append(urls, url)
			}
			shop.GalleryImages = urls
			if err := h.db.Model(&shop).Update("gallery_images", shop.GalleryImages).Error; err != nil {
				httperr.Internal(c, "update_failed", "Could not store gallery images.")
				return
			}
		}
	}

	if len(updates) > 0 {
		if err := h.db.Model(&shop).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Could not update shop.")
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		UserID:   &userID,
		Action:   "shop_updated",
		Entity:   "shop",
		EntityID: &shop.ID,
	})

	var updated models.Shop
	if err := h.db.
		Preload("Owner").
		Preload("Services").
		First(&updated, shop.ID).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not reload shop.")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// OwnerShop returns the authenticated owner's shop with services and the full
// appointment book.
func (h *ShopHandler) OwnerShop(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var shop models.Shop
	if err := h.db.
		Preload("Services").
		Where("owner_id = ?", userID).
		First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "No shop registered for this account.")
		return
	}

	var appointments []models.Appointment
	h.db.Preload("User").Preload("Service").
		Where("shop_id = ?", shop.ID).
		Find(&appointments)

	c.JSON(http.StatusOK, ownerShopResponse{
		Shop:         shop,
		Appointments: appointments,
	})
}

type ownerShopResponse struct {
	models.Shop
	Appointments []models.Appointment `json:"appointments"`
}

func (h *ShopHandler) saveUpload(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > storage.MaxUploadSize {
		return "", fmt.Errorf("file %s exceeds the 10MB limit", fh.Filename)
	}

	ct := fh.Header.Get("Content-Type")
	if !storage.AllowedContentType(ct) {
		return "", fmt.Errorf("unsupported file type %q", ct)
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := storage.ProcessImage(f, ct)
	if err != nil {
		return "", err
	}

	return h.images.Save(c.Request.Context(), data)
}
