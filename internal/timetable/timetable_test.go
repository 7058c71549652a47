package timetable

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != 9*60+30 {
		t.Fatalf("got %d, want %d", got, 9*60+30)
	}
	if got.String() != "09:30" {
		t.Fatalf("String() = %q, want %q", got.String(), "09:30")
	}

	if _, err := ParseTimeOfDay("25:00"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestSplitWindows_WholeInterval(t *testing.T) {
	open, _ := ParseTimeOfDay("09:00")
	close, _ := ParseTimeOfDay("13:00")

	windows, err := SplitWindows(open, close, 120)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if windows[0].Start.String() != "09:00" || windows[0].End.String() != "11:00" {
		t.Fatalf("first window = %s-%s", windows[0].Start, windows[0].End)
	}
	if windows[1].Start.String() != "11:00" || windows[1].End.String() != "13:00" {
		t.Fatalf("second window = %s-%s", windows[1].Start, windows[1].End)
	}
}

func TestSplitWindows_DropsPartialTail(t *testing.T) {
	open, _ := ParseTimeOfDay("09:00")
	close, _ := ParseTimeOfDay("12:30")

	windows, err := SplitWindows(open, close, 120)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	// 09:00-11:00 fits, 11:00-13:00 would pass 12:30 and is dropped.
	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	last := windows[len(windows)-1]
	if last.End > close {
		t.Fatalf("window end %s extends past close %s", last.End, close)
	}
}

func TestSplitWindows_NoOverlapProperty(t *testing.T) {
	open, _ := ParseTimeOfDay("08:15")
	close, _ := ParseTimeOfDay("23:00")

	windows, err := SplitWindows(open, close, 45)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	for i := range windows {
		for j := i + 1; j < len(windows); j++ {
			if Overlaps(windows[i], windows[j]) {
				t.Fatalf("windows %d and %d overlap", i, j)
			}
		}
		if windows[i].End > close {
			t.Fatalf("window %d extends past close", i)
		}
	}
}

func TestSplitWindows_Rejections(t *testing.T) {
	if _, err := SplitWindows(600, 540, 60); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("inverted interval: expected ErrInvalidInterval, got %v", err)
	}
	if _, err := SplitWindows(540, 540, 60); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("empty interval: expected ErrInvalidInterval, got %v", err)
	}
	if _, err := SplitWindows(540, 600, 0); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("zero duration: expected ErrInvalidDuration, got %v", err)
	}
	if _, err := SplitWindows(540, 600, -30); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("negative duration: expected ErrInvalidDuration, got %v", err)
	}
}

func TestAt(t *testing.T) {
	day := time.Date(2025, 6, 1, 15, 44, 30, 0, time.UTC)
	tod, _ := ParseTimeOfDay("10:30")

	got := tod.At(day, nil)
	want := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("At = %v, want %v", got, want)
	}
}

func TestOverlaps(t *testing.T) {
	a := Window{Start: 540, End: 600}
	b := Window{Start: 600, End: 660}
	if Overlaps(a, b) {
		t.Fatalf("touching windows must not overlap")
	}
	c := Window{Start: 570, End: 630}
	if !Overlaps(a, c) {
		t.Fatalf("expected overlap")
	}
}
