package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonware/salon-manager/internal/audit"
	"github.com/salonware/salon-manager/internal/httperr"
	"github.com/salonware/salon-manager/internal/middleware"
	"github.com/salonware/salon-manager/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewWorkingHoursHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, audit: auditDispatcher}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

// professional loads the professional and verifies it belongs to the
// caller's salon before any working-hours access.
func (h *WorkingHoursHandler) professional(c *gin.Context) (*models.Professional, bool) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var prof models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&prof).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_professional", "Failed to load professional.")
		return nil, false
	}
	return &prof, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	prof, ok := h.professional(c)
	if !ok {
		return
	}

	hours := []models.WorkingHours{}
	if err := h.db.
		Where("professional_id = ?", prof.ID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Failed to load working hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the full week in one shot. Days absent from the payload
// are removed.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	prof, ok := h.professional(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", prof.ID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		toCreate := make([]models.WorkingHours, 0, len(req.Days))
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkingHours{
				ProfessionalID: prof.ID,
				Weekday:        d.Weekday,
				Active:         d.Active,
				StartTime:      d.StartTime,
				EndTime:        d.EndTime,
				LunchStart:     d.LunchStart,
				LunchEnd:       d.LunchEnd,
			})
		}

		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Failed to save working hours.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "working_hours_updated",
		Entity:   "professional",
		EntityID: &prof.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
