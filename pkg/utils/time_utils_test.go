package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:00", 600, false},
		{" 9:05 ", 545, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTime) {
					t.Errorf("ParseClock(%q) err = %v, want ErrInvalidTime", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseClock(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		0:    "00:00",
		545:  "09:05",
		1439: "23:59",
		1500: "01:00",
		-30:  "23:30",
	}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseWindow(t *testing.T) {
	start, end, err := ParseWindow("11:30-13:30")
	if err != nil || start != 690 || end != 810 {
		t.Errorf("ParseWindow = %d, %d, %v", start, end, err)
	}

	for _, bad := range []string{"11:30", "13:30-11:30", "11:30-11:30", "a-b"} {
		if _, _, err := ParseWindow(bad); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ParseWindow(%q) err = %v, want ErrInvalidTime", bad, err)
		}
	}
}

func TestMinutesOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 14, 17, 45, 30, 0, time.UTC)
	if got := MinutesOfDay(ts); got != 17*60+45 {
		t.Errorf("MinutesOfDay = %d", got)
	}
}
