package service

import (
	"fmt"
	"time"

	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

// slotLabelLayout renders instants as 12-hour labels like "09:00 AM", the
// form the scheduling UI has always shown.
const slotLabelLayout = "03:04 PM"

// SlotLabel renders an instant as its display label in loc. Pure; the inverse
// of SlotTime for any instant that falls on a slot boundary.
func SlotLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(slotLabelLayout)
}

// SlotTime resolves a slot label against a calendar day back to the absolute
// instant it denotes in loc. The day's year/month/day are read as given, not
// shifted into loc first, so a date parsed at midnight UTC still names the
// same calendar day. Rendering the result with SlotLabel reproduces the label.
func SlotTime(day time.Time, label string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse(slotLabelLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad slot label %q", apperrors.ErrInvalidRequest, label)
	}

	y, m, d := day.Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}

// slotTimes enumerates the slot-start instants of one working day, from
// startHour inclusive to endHour exclusive in steps of width. The calendar
// day is day's own year/month/day; converting through loc here would move
// a midnight-UTC date to the previous day anywhere west of UTC.
func slotTimes(day time.Time, loc *time.Location, startHour, endHour int, width time.Duration) []time.Time {
	y, m, d := day.Date()
	cur := time.Date(y, m, d, startHour, 0, 0, 0, loc)
	end := time.Date(y, m, d, endHour, 0, 0, 0, loc)

	var out []time.Time
	for cur.Before(end) {
		out = append(out, cur)
		cur = cur.Add(width)
	}
	return out
}
