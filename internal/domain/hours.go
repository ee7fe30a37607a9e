package domain

import (
	"strconv"
	"strings"
	"time"
)

// HoursInterval is one open period within a day, as "HH:MM" strings in the
// venue's local time. A close time at or before the open time means the
// interval runs past midnight into the following day.
type HoursInterval struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours maps lowercase English weekday names ("monday" ... "sunday")
// to that day's open intervals. An absent day is closed all day.
type OpeningHours map[string][]HoursInterval

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// OpenNow reports whether a venue with the given structured hours is open at
// the package clock's current time. Returns nil when no structured hours are
// available — the directory shows "hours unknown" rather than guessing from
// free text.
func OpenNow(hours OpeningHours) *bool {
	if len(hours) == 0 {
		return nil
	}

	now := clock.Now()
	open := openAt(hours, now)
	return &open
}

// openAt evaluates the hours at an explicit instant. Intervals spilling past
// midnight are credited to the day they started, so 23:00–02:00 on Friday
// covers the small hours of Saturday.
func openAt(hours OpeningHours, now time.Time) bool {
	minute := now.Hour()*60 + now.Minute()

	for _, iv := range hours[weekdayNames[now.Weekday()]] {
		openMin, okO := parseClock(iv.Open)
		closeMin, okC := parseClock(iv.Close)
		if !okO || !okC {
			continue
		}
		if closeMin > openMin {
			if minute >= openMin && minute < closeMin {
				return true
			}
		} else if minute >= openMin {
			return true
		}
	}

	// Check yesterday's intervals for a past-midnight spill.
	yesterday := now.AddDate(0, 0, -1)
	for _, iv := range hours[weekdayNames[yesterday.Weekday()]] {
		openMin, okO := parseClock(iv.Open)
		closeMin, okC := parseClock(iv.Close)
		if !okO || !okC {
			continue
		}
		if closeMin <= openMin && minute < closeMin {
			return true
		}
	}

	return false
}

// parseClock parses "HH:MM" into minutes from midnight.
func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	hour, errH := strconv.Atoi(h)
	mins, errM := strconv.Atoi(m)
	if errH != nil || errM != nil || hour < 0 || hour > 23 || mins < 0 || mins > 59 {
		return 0, false
	}
	return hour*60 + mins, true
}
