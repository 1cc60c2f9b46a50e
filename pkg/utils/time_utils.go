package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM". Values past midnight
// wrap, so an outing that runs late still prints a wall-clock time.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseWindow parses "HH:MM-HH:MM" into a start/end pair in minutes.
func ParseWindow(s string) (start, end int, err error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: window %q", ErrInvalidTime, s)
	}
	if start, err = ParseClock(from); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(to); err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("%w: window %q ends before it starts", ErrInvalidTime, s)
	}
	return start, end, nil
}

// MinutesOfDay returns t's wall-clock position in minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
