package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salonware/salon-manager/internal/audit"
	domain "github.com/salonware/salon-manager/internal/domain/appointment"
	"github.com/salonware/salon-manager/internal/dto"
	"github.com/salonware/salon-manager/internal/httperr"
	"github.com/salonware/salon-manager/internal/httpresp"
	"github.com/salonware/salon-manager/internal/middleware"
	"github.com/salonware/salon-manager/internal/models"
	ucappointment "github.com/salonware/salon-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	createUC       *ucappointment.CreateAppointment
	cancelUC       *ucappointment.CancelAppointment
	completeUC     *ucappointment.CompleteAppointment
	availabilityUC *ucappointment.GetAvailability
}

func NewAppointmentHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	createUC *ucappointment.CreateAppointment,
	cancelUC *ucappointment.CancelAppointment,
	completeUC *ucappointment.CompleteAppointment,
	availabilityUC *ucappointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		audit:          auditDispatcher,
		createUC:       createUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID       uint    `json:"client_id" binding:"required"`
	ProfessionalID uint    `json:"professional_id" binding:"required"`
	ServiceID      uint    `json:"service_id" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	Time           string  `json:"time" binding:"required"`
	Notes          *string `json:"notes,omitempty"`
}

type UpdateAppointmentRequest struct {
	Date  *string `json:"date,omitempty"`
	Time  *string `json:"time,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// ======================================================
// CRUD
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where("salon_id = ?", salonID)

	if pidStr := c.Query("professional_id"); pidStr != "" {
		if pid, err := strconv.Atoi(pidStr); err == nil {
			q = q.Where("professional_id = ?", pid)
		}
	}

	if dateStr := c.Query("date"); dateStr != "" {
		salon, ok := h.loadSalon(c, salonID)
		if !ok {
			return
		}
		date, err := parseDateInSalon(salon, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		q = q.Where("start_time >= ? AND start_time < ?", start, start.Add(24*time.Hour))
	}

	appointments := []models.Appointment{}
	if err := q.
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&ap).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Failed to load appointment.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	salon, ok := h.loadSalon(c, salonID)
	if !ok {
		return
	}

	start, err := parseDateTimeInSalon(salon, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		SalonID:        salonID,
		UserID:         userID,
		ProfessionalID: req.ProfessionalID,
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		Start:          start,
		Notes:          req.Notes,
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	salon, ok := h.loadSalon(c, salonID)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&ap).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Failed to load appointment.")
		return
	}

	if ap.Status != string(domain.StatusScheduled) {
		httperr.BadRequest(c, "invalid_state", "Only scheduled appointments can be changed.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Notes != nil {
		ap.Notes = req.Notes
	}

	// Rescheduling keeps the original duration and re-checks conflicts.
	if req.Date != nil && req.Time != nil {
		start, err := parseDateTimeInSalon(salon, *req.Date, *req.Time)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
			return
		}

		duration := ap.EndTime.Sub(ap.StartTime)
		end := start.Add(duration)

		err = h.db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.
				Model(&models.Appointment{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(
					"professional_id = ? AND id <> ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
					ap.ProfessionalID, ap.ID, end, start,
				).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return httperr.ErrBusiness("time_conflict")
			}

			ap.StartTime = start
			ap.EndTime = end
			return tx.Save(&ap).Error
		})
		if err != nil {
			h.writeBusinessError(c, err)
			return
		}
	} else if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&ap).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Failed to load appointment.")
		return
	}

	if err := h.db.Delete(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Failed to delete appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), salonID, userID, uint(id))
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), salonID, userID, uint(id))
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// AGENDA + AVAILABILITY
// ======================================================

// Agenda returns the flattened rows for one day.
func (h *AppointmentHandler) Agenda(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	salon, ok := h.loadSalon(c, salonID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	var aps []models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where(
			"salon_id = ? AND start_time >= ? AND start_time < ?",
			salonID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Failed to load agenda.")
		return
	}

	out := make([]dto.AppointmentAgendaDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentAgendaDTO{
			ID:               ap.ID,
			StartTime:        ap.StartTime,
			EndTime:          ap.EndTime,
			Status:           ap.Status,
			ClientName:       ap.Client.Name,
			ServiceName:      ap.Service.Name,
			ProfessionalName: ap.Professional.Name,
		})
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	professionalID, err1 := strconv.ParseUint(c.Query("professional_id"), 10, 32)
	serviceID, err2 := strconv.ParseUint(c.Query("service_id"), 10, 32)
	dateStr := c.Query("date")

	if err1 != nil || err2 != nil || dateStr == "" {
		httperr.BadRequest(c, "missing_parameters", "professional_id, service_id and date are required.")
		return
	}

	salon, ok := h.loadSalon(c, salonID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:        salonID,
		ProfessionalID: uint(professionalID),
		ServiceID:      uint(serviceID),
		Date:           date,
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) loadSalon(c *gin.Context, salonID uint) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

func (h *AppointmentHandler) writeBusinessError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "":
		httperr.Internal(c, "internal_error", "Unexpected error.")
	case "appointment_not_found", "service_not_found":
		httperr.NotFound(c, code, "Record not found.")
	case "time_conflict":
		httperr.Conflict(c, code, "Time conflict with another appointment.")
	default:
		httperr.BadRequest(c, code, "Request violates scheduling rules.")
	}
}
