package pricing

import (
	"time"
)

const DayFormat = "2006-01-02"

// StayNights expands a check-in/check-out pair into the ordered list of
// night-start dates. Check-out is exclusive: a stay from day N to day N+3
// covers exactly three nights. Zero-length or inverted ranges yield an empty
// list; callers must reject that as invalid input instead of pricing zero
// nights.
func StayNights(startDate, endDate time.Time) []string {
	nights := []string{}

	day := startDate
	for day.Before(endDate) {
		nights = append(nights, day.Format(DayFormat))
		day = day.AddDate(0, 0, 1)
	}

	return nights
}

// ParseDay parses a calendar day in the wire format used across the cart.
func ParseDay(value string) (time.Time, error) {
	return time.Parse(DayFormat, value)
}
