package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonware/salon-manager/internal/httperr"
	"github.com/salonware/salon-manager/internal/models"
)

func TestCancel_Scheduled(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}
	now := time.Now()

	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)
}

func TestCancel_TerminalStatesRejected(t *testing.T) {
	for _, status := range []Status{StatusCancelled, StatusCompleted} {
		ap := &models.Appointment{Status: string(status)}

		err := Cancel(ap, time.Now())
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "status %s", status)
		assert.Equal(t, string(status), ap.Status, "status must not change")
	}
}

func TestComplete_Scheduled(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}
	now := time.Now()

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestComplete_TerminalStatesRejected(t *testing.T) {
	for _, status := range []Status{StatusCancelled, StatusCompleted} {
		ap := &models.Appointment{Status: string(status)}

		err := Complete(ap, time.Now())
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "status %s", status)
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusScheduled, InitialStatus())
}
