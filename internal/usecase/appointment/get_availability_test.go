package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/salonware/salon-manager/internal/domain/appointment"
	"github.com/salonware/salon-manager/internal/httperr"
	"github.com/salonware/salon-manager/internal/models"
)

func availabilityInput() domain.AvailabilityInput {
	return domain.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 4,
		ServiceID:      3,
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestAvailability_SkipsBookedSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.workingHours = &models.WorkingHours{
		Active:    true,
		StartTime: "09:00",
		EndTime:   "12:00",
	}

	day := availabilityInput().Date
	repo.dayAps = []models.Appointment{{
		StartTime: time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(day.Year(), day.Month(), day.Day(), 11, 0, 0, 0, time.UTC),
	}}

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	assert.Equal(t, []domain.TimeSlot{
		{Start: "09:00", End: "10:00"},
		{Start: "11:00", End: "12:00"},
	}, slots)
}

func TestAvailability_ExcludesLunch(t *testing.T) {
	repo := newFakeRepo()
	repo.workingHours = &models.WorkingHours{
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "15:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)

	for _, s := range slots {
		assert.NotEqual(t, "12:00", s.Start, "lunch hour must not be offered")
	}
	assert.Len(t, slots, 5)
}

func TestAvailability_InactiveDayIsEmptyNotNil(t *testing.T) {
	repo := newFakeRepo()
	repo.workingHours = &models.WorkingHours{Active: false}

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailability_ZeroDurationServiceRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.service = &models.Service{ID: 3, DurationMin: 0}
	repo.workingHours = &models.WorkingHours{
		Active:    true,
		StartTime: "09:00",
		EndTime:   "12:00",
	}

	uc := NewGetAvailability(repo)
	_, err := uc.Execute(context.Background(), availabilityInput())
	assert.True(t, httperr.IsBusiness(err, "invalid_service_duration"))
}

func TestAvailability_NoWorkingHoursConfigured(t *testing.T) {
	repo := newFakeRepo()

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	require.NotNil(t, slots)
	assert.Empty(t, slots)
}
