package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	t.Run("empty and Local map to system timezone", func(t *testing.T) {
		for _, tz := range []string{"", "Local"} {
			loc, err := LoadLocation(tz)
			if err != nil {
				t.Errorf("LoadLocation(%q) returned unexpected error: %v", tz, err)
			}
			if loc != time.Local {
				t.Errorf("LoadLocation(%q) = %v, want time.Local", tz, loc)
			}
		}
	})

	t.Run("IANA name", func(t *testing.T) {
		loc, err := LoadLocation("America/New_York")
		if err != nil {
			t.Fatalf("LoadLocation() returned unexpected error: %v", err)
		}
		if loc.String() != "America/New_York" {
			t.Errorf("LoadLocation() = %v, want America/New_York", loc)
		}
	})

	t.Run("garbage name", func(t *testing.T) {
		if _, err := LoadLocation("Not/AZone"); err == nil {
			t.Error("LoadLocation(garbage) expected error, got nil")
		}
	})
}

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load test location: %v", err)
	}

	got, err := ParseDateInLocation("2024-06-10", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() returned unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParseDateInLocation() = %v, want %v", got, want)
	}

	if _, err := ParseDateInLocation("10-06-2024", loc); err == nil {
		t.Error("ParseDateInLocation(bad format) expected error, got nil")
	}
}

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load test location: %v", err)
	}

	in := time.Date(2024, 6, 10, 18, 45, 30, 123, loc)
	got := StartOfDay(in)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("StartOfDay() location = %v, want input location preserved", got.Location())
	}
}

func TestFormatDate(t *testing.T) {
	in := time.Date(2024, 6, 10, 18, 45, 0, 0, time.UTC)
	if got := FormatDate(in); got != "2024-06-10" {
		t.Errorf("FormatDate() = %q, want %q", got, "2024-06-10")
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		tz   string
		want bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"Europe/Berlin", true},
		{"Mars/OlympusMons", false},
	}

	for _, tt := range tests {
		if got := ValidateTimezone(tt.tz); got != tt.want {
			t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.tz, got, tt.want)
		}
	}
}
