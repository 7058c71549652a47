// Package timetable holds the pure time arithmetic behind slot
// generation: time-of-day parsing, working-hour windowing and overlap
// checks. Nothing here touches storage.
package timetable

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInterval = errors.New("invalid working interval")
	ErrInvalidDuration = errors.New("slot duration must be positive")
	ErrInvalidTime     = errors.New("invalid time of day")
)

// TimeOfDay is minutes since midnight, 0..1439.
type TimeOfDay int

const MinutesPerDay = 24 * 60

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// At combines a calendar day and a time of day into an instant in loc.
// A nil loc means UTC.
func (t TimeOfDay) At(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, int(t)/60, int(t)%60, 0, 0, loc)
}

// Window is the half-open interval [Start, End) within one day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Duration of the window in minutes.
func (w Window) Duration() int { return int(w.End - w.Start) }

// SplitWindows walks [open, close) in steps of stepMin minutes and
// returns one window per step. A trailing remainder shorter than the
// step is dropped, so no window ever extends past close.
func SplitWindows(open, close TimeOfDay, stepMin int) ([]Window, error) {
	if stepMin <= 0 {
		return nil, ErrInvalidDuration
	}
	if open < 0 || close > MinutesPerDay || close <= open {
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, open, close)
	}

	var windows []Window
	for cur := open; cur+TimeOfDay(stepMin) <= close; cur += TimeOfDay(stepMin) {
		windows = append(windows, Window{Start: cur, End: cur + TimeOfDay(stepMin)})
	}
	return windows, nil
}

// Overlaps reports whether two half-open windows intersect.
func Overlaps(a, b Window) bool {
	return a.Start < b.End && b.Start < a.End
}
