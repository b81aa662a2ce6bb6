// README: TimeWindow value type with overnight normalization and overlap testing.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidWindow = errors.New("invalid time window")

// TimeWindow is an immutable event time span anchored to a calendar date.
// Windows whose end time is at or before their start time cross midnight:
// the effective end lands on the following day. A window is always built
// through NewWindow or ParseWindow so start < end holds by construction.
type TimeWindow struct {
	start time.Time
	end   time.Time
}

// NewWindow builds a window from a calendar date and "HH:MM" start/end times.
// Equal start and end is rejected rather than read as a 24-hour span.
func NewWindow(date time.Time, startTime, endTime string) (TimeWindow, error) {
	startMin, err := parseHHMM(startTime)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: start %q", ErrInvalidWindow, startTime)
	}
	endMin, err := parseHHMM(endTime)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: end %q", ErrInvalidWindow, endTime)
	}
	if startMin == endMin {
		return TimeWindow{}, fmt.Errorf("%w: start equals end", ErrInvalidWindow)
	}

	year, month, day := date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	start := midnight.Add(time.Duration(startMin) * time.Minute)
	end := midnight.Add(time.Duration(endMin) * time.Minute)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return TimeWindow{start: start, end: end}, nil
}

// ParseWindow builds a window from a "YYYY-MM-DD" date string.
func ParseWindow(date, startTime, endTime string) (TimeWindow, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: date %q", ErrInvalidWindow, date)
	}
	return NewWindow(d, startTime, endTime)
}

// Start returns the absolute start instant.
func (w TimeWindow) Start() time.Time { return w.start }

// End returns the absolute end instant, after overnight normalization.
func (w TimeWindow) End() time.Time { return w.end }

// Date returns the anchor calendar date (midnight UTC of the start day).
func (w TimeWindow) Date() time.Time {
	year, month, day := w.start.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the window was never constructed.
func (w TimeWindow) IsZero() bool { return w.start.IsZero() }

// DurationHours is the window length in hours; always > 0 for a
// constructed window.
func (w TimeWindow) DurationHours() float64 {
	return w.end.Sub(w.start).Hours()
}

// DurationMinutes is the window length in whole minutes.
func (w TimeWindow) DurationMinutes() int64 {
	return int64(w.end.Sub(w.start) / time.Minute)
}

// Overlaps reports whether two windows share any instant. Intervals are
// half-open, so back-to-back windows do not overlap. Both windows carry
// their own dates, so spans on different days compare correctly.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s %s-%s", w.start.Format("2006-01-02"), w.start.Format("15:04"), w.end.Format("15:04"))
}

// parseHHMM converts "HH:MM" to minutes since midnight.
func parseHHMM(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	return h*60 + m, nil
}
