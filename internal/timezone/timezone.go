// Package timezone resolves salon timezone identifiers. Every schedule
// calculation happens in the salon's own zone; this is the single fallback
// point when a salon carries an empty or unknown identifier.
package timezone

import "time"

// DefaultTimezone backs salons that never configured one.
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to the default when it is empty or
// unknown. It never returns nil.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return NowIn(DefaultTimezone)
}

// NowIn is the clock every scheduling rule reads: the current instant in
// the salon's zone.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
