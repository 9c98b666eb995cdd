package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonware/salon-manager/internal/models"
)

func TestParseDateTimeInSalon_UsesSalonTimezone(t *testing.T) {
	salon := &models.Salon{Timezone: "America/Sao_Paulo"}

	got, err := parseDateTimeInSalon(salon, "2026-03-10", "14:30")
	require.NoError(t, err)

	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	assert.Equal(t, loc.String(), got.Location().String())
}

func TestParseDateInSalon_RejectsMalformed(t *testing.T) {
	salon := &models.Salon{Timezone: "UTC"}

	_, err := parseDateInSalon(salon, "10/03/2026")
	assert.Error(t, err)
}

func TestLocationFromSalon_FallsBackOnUnknown(t *testing.T) {
	salon := &models.Salon{Timezone: "Not/AZone"}

	loc := locationFromSalon(salon)
	require.NotNil(t, loc)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}
