package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a calendar anchor with no fixed year (a holiday, birthday or
// other annually recurring date).
type Event struct {
	ID          uuid.UUID
	Emoji       string
	Name        string
	Anchor      string // "MM-DD"
	Description *string
	Recurring   bool
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CountdownToday is returned when the event's next occurrence has already
// been reached at evaluation time.
const CountdownToday = "🎉 Today!"

// ParseAnchor parses and validates an "MM-DD" anchor string.
func ParseAnchor(s string) (time.Month, int, error) {
	month, day := anchorParts(s)
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("anchor %q: month out of range", s)
	}
	// Day 29 is accepted for February; leap handling is up to the
	// occurrence calculation, which lets time.Date normalize it.
	if day < 1 || day > daysInMonth(time.Month(month)) {
		return 0, 0, fmt.Errorf("anchor %q: day out of range", s)
	}
	return time.Month(month), day, nil
}

// anchorParts splits an anchor without validating. Malformed components
// come back as zero, and time.Date silently normalizes the result — the
// validated path is ParseAnchor at the store boundary.
func anchorParts(s string) (int, int) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	month, _ := strconv.Atoi(parts[0])
	day, _ := strconv.Atoi(parts[1])
	return month, day
}

func daysInMonth(m time.Month) int {
	switch m {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		return 29
	default:
		return 31
	}
}

// NextOccurrence resolves the nearest future occurrence of the anchor,
// with the time of day pinned to 23:59:59: the anchor date counts as
// "not yet passed" until the very end of that day. If this year's
// occurrence is already behind now, it rolls to next year.
func (e Event) NextOccurrence(now time.Time) time.Time {
	month, day := anchorParts(e.Anchor)
	candidate := time.Date(now.Year(), time.Month(month), day, 23, 59, 59, 0, now.Location())
	if candidate.Before(now) {
		candidate = time.Date(now.Year()+1, time.Month(month), day, 23, 59, 59, 0, now.Location())
	}
	return candidate
}

// NextOccurrenceDate resolves the next occurrence at midnight, rolling to
// next year only when the anchor date is strictly before today. This is
// the sort key for upcoming-event lists and intentionally uses a
// different cutoff than NextOccurrence: a countdown keeps ticking until
// 23:59:59, while the list already treats the whole day as current.
func (e Event) NextOccurrenceDate(now time.Time) time.Time {
	month, day := anchorParts(e.Anchor)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	candidate := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
	if candidate.Before(today) {
		candidate = time.Date(now.Year()+1, time.Month(month), day, 0, 0, 0, 0, now.Location())
	}
	return candidate
}

// Countdown formats a remaining duration using its largest nonzero unit.
// Zero or negative durations mean the day has arrived.
func Countdown(remaining time.Duration) string {
	if remaining <= 0 {
		return CountdownToday
	}

	days := int(remaining.Hours()) / 24
	hours := int(remaining.Hours()) % 24
	minutes := int(remaining.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return "Less than 1m"
	}
}
