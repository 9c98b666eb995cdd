package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salonware/salon-manager/internal/audit"
	"github.com/salonware/salon-manager/internal/httperr"
	"github.com/salonware/salon-manager/internal/middleware"
	"github.com/salonware/salon-manager/internal/models"
	"github.com/salonware/salon-manager/internal/payments"
)

type FinancialEntryHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	payments payments.Provider
}

// NewFinancialEntryHandler builds the handler; payments may be nil when no
// provider is configured, which disables checkout.
func NewFinancialEntryHandler(db *gorm.DB, audit *audit.Dispatcher, provider payments.Provider) *FinancialEntryHandler {
	return &FinancialEntryHandler{db: db, audit: audit, payments: provider}
}

// --------- Requests ---------

type CreateFinancialEntryRequest struct {
	Description   string `json:"description" binding:"required,max=255"`
	AmountCents   int64  `json:"amount_cents" binding:"required"`
	Kind          string `json:"kind" binding:"required,oneof=income expense"`
	Status        string `json:"status" binding:"omitempty,oneof=pending paid"`
	OccurredAt    string `json:"occurred_at" binding:"required,datetime=2006-01-02"`
	AppointmentID *uint  `json:"appointment_id,omitempty"`
}

type UpdateFinancialEntryRequest struct {
	Description *string `json:"description,omitempty"`
	AmountCents *int64  `json:"amount_cents,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=pending paid"`
	OccurredAt  *string `json:"occurred_at,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// --------- Handlers ---------

func (h *FinancialEntryHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	kind := c.Query("kind")
	status := c.Query("status")

	q := h.db.Where("salon_id = ?", salonID)

	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	entries := []models.FinancialEntry{}
	if err := q.
		Order("occurred_at DESC").
		Find(&entries).Error; err != nil {

		httperr.Internal(c, "failed_to_list_entries", "Failed to list financial entries.")
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *FinancialEntryHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var entry models.FinancialEntry
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&entry).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "entry_not_found", "Financial entry not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_entry", "Failed to load financial entry.")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *FinancialEntryHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateFinancialEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	occurred, err := time.Parse("2006-01-02", req.OccurredAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid occurred_at date.")
		return
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	entry := models.FinancialEntry{
		SalonID:       salonID,
		Description:   req.Description,
		AmountCents:   req.AmountCents,
		Kind:          req.Kind,
		Status:        status,
		Reference:     uuid.NewString(),
		OccurredAt:    occurred,
		AppointmentID: req.AppointmentID,
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_entry", "Failed to create financial entry.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "financial_entry_created",
		Entity:   "financial_entry",
		EntityID: &entry.ID,
	})

	c.JSON(http.StatusCreated, entry)
}

func (h *FinancialEntryHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var entry models.FinancialEntry
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&entry).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "entry_not_found", "Financial entry not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_entry", "Failed to load financial entry.")
		return
	}

	var req UpdateFinancialEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.AmountCents != nil {
		entry.AmountCents = *req.AmountCents
	}
	if req.Status != nil {
		entry.Status = *req.Status
	}
	if req.OccurredAt != nil {
		occurred, err := time.Parse("2006-01-02", *req.OccurredAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid occurred_at date.")
			return
		}
		entry.OccurredAt = occurred
	}

	if err := h.db.Save(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_update_entry", "Failed to update financial entry.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "financial_entry_updated",
		Entity:   "financial_entry",
		EntityID: &entry.ID,
	})

	c.JSON(http.StatusOK, entry)
}

func (h *FinancialEntryHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var entry models.FinancialEntry
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&entry).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "entry_not_found", "Financial entry not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_entry", "Failed to load financial entry.")
		return
	}

	if err := h.db.Delete(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_entry", "Failed to delete financial entry.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "financial_entry_deleted",
		Entity:   "financial_entry",
		EntityID: &entry.ID,
	})

	c.Status(http.StatusNoContent)
}

// Checkout creates a payment link for a pending income entry.
func (h *FinancialEntryHandler) Checkout(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	if h.payments == nil {
		httperr.BadRequest(c, "payments_not_configured", "No payment provider is configured.")
		return
	}

	var entry models.FinancialEntry
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&entry).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "entry_not_found", "Financial entry not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_entry", "Failed to load financial entry.")
		return
	}

	if entry.Kind != "income" || entry.Status != "pending" {
		httperr.BadRequest(c, "not_payable", "Only pending income entries can be checked out.")
		return
	}

	link, err := h.payments.CreateCheckout(c.Request.Context(), payments.CheckoutRequest{
		Reference:   entry.Reference,
		Title:       entry.Description,
		AmountCents: entry.AmountCents,
	})
	if err != nil {
		httperr.Internal(c, "checkout_failed", "Failed to create payment link.")
		return
	}

	entry.PaymentURL = &link.URL
	if err := h.db.Save(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_update_entry", "Failed to store payment link.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "financial_entry_checkout",
		Entity:   "financial_entry",
		EntityID: &entry.ID,
		Metadata: map[string]any{"provider_id": link.ProviderID},
	})

	c.JSON(http.StatusOK, entry)
}
