package handlers

import (
	"time"

	"github.com/salonware/salon-manager/internal/models"
	"github.com/salonware/salon-manager/internal/timezone"
)

// Every date/time a handler parses is interpreted in the salon's timezone.

func locationFromSalon(salon *models.Salon) *time.Location {
	return timezone.Location(salon.Timezone)
}

func nowInSalon(salon *models.Salon) time.Time {
	return time.Now().In(locationFromSalon(salon))
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}

func parseDateTimeInSalon(
	salon *models.Salon,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromSalon(salon),
	)
}
