package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonware/salon-manager/internal/audit"
	"github.com/salonware/salon-manager/internal/httperr"
	"github.com/salonware/salon-manager/internal/media"
	"github.com/salonware/salon-manager/internal/middleware"
	"github.com/salonware/salon-manager/internal/models"
)

// 10 MB cap on the raw upload, before re-encoding.
const maxImageUploadBytes = 10 << 20

type MediaHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
	audit    *audit.Dispatcher
}

func NewMediaHandler(db *gorm.DB, uploader *media.Uploader, auditDispatcher *audit.Dispatcher) *MediaHandler {
	return &MediaHandler{db: db, uploader: uploader, audit: auditDispatcher}
}

// UploadProductImage accepts a multipart "image" field, converts it and
// stores the resulting URL on the product.
func (h *MediaHandler) UploadProductImage(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Failed to load product.")
		return
	}

	url, ok := h.receiveAndUpload(c, "products")
	if !ok {
		return
	}

	product.ImageURL = &url
	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Failed to save image URL.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "product_image_uploaded",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *MediaHandler) UploadProfessionalImage(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var prof models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&prof).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Failed to load professional.")
		return
	}

	url, ok := h.receiveAndUpload(c, "professionals")
	if !ok {
		return
	}

	prof.ImageURL = &url
	if err := h.db.Save(&prof).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Failed to save image URL.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "professional_image_uploaded",
		Entity:   "professional",
		EntityID: &prof.ID,
	})

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *MediaHandler) receiveAndUpload(c *gin.Context, folder string) (string, bool) {
	if h.uploader == nil {
		httperr.Internal(c, "media_not_configured", "Image storage is not configured.")
		return "", false
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Multipart field \"image\" is required.")
		return "", false
	}
	defer file.Close()

	if header.Size > maxImageUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Image exceeds the upload limit.")
		return "", false
	}

	url, err := h.uploader.UploadImage(c.Request.Context(), file, folder)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "File could not be processed as an image.")
		return "", false
	}
	return url, true
}
