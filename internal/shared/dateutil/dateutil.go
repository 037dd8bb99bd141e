package dateutil

import "time"

const DayFormat = "2006-01-02"

// Midnight normalizes a time to UTC midnight. Every day-keyed lookup in the
// system compares on this normalized value.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current day at UTC midnight.
func Today() time.Time {
	return Midnight(time.Now())
}

// ParseDay parses YYYY-MM-DD into a UTC midnight time. An empty string
// defaults to today.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return Today(), nil
	}
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Midnight(t), nil
}
