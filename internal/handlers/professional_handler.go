package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonware/salon-manager/internal/audit"
	"github.com/salonware/salon-manager/internal/httperr"
	"github.com/salonware/salon-manager/internal/middleware"
	"github.com/salonware/salon-manager/internal/models"
)

type ProfessionalHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProfessionalHandler(db *gorm.DB, audit *audit.Dispatcher) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"max=20"`
	Specialty string `json:"specialty" binding:"max=50"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(specialty) LIKE ?", like, like)
	}

	professionals := []models.Professional{}
	if err := q.
		Order("id ASC").
		Find(&professionals).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Failed to list professionals.")
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Failed to load professional.")
		return
	}

	c.JSON(http.StatusOK, professional)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	professional := models.Professional{
		SalonID:   salonID,
		Name:      req.Name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Active:    true,
	}

	if err := h.db.Create(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Failed to create professional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "professional_created",
		Entity:   "professional",
		EntityID: &professional.ID,
	})

	c.JSON(http.StatusCreated, professional)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Failed to load professional.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		professional.Name = *req.Name
	}
	if req.Email != nil {
		professional.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		professional.Phone = *req.Phone
	}
	if req.Specialty != nil {
		professional.Specialty = *req.Specialty
	}
	if req.Active != nil {
		professional.Active = *req.Active
	}

	if err := h.db.Save(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Failed to update professional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "professional_updated",
		Entity:   "professional",
		EntityID: &professional.ID,
	})

	c.JSON(http.StatusOK, professional)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Failed to load professional.")
		return
	}

	if err := h.db.Delete(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Failed to delete professional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "professional_deleted",
		Entity:   "professional",
		EntityID: &professional.ID,
	})

	c.Status(http.StatusNoContent)
}
