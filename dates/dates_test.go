package dates

import (
	"strconv"
	"testing"
	"time"
)

func TestValid(t *testing.T) {
	valid := []string{"2024-06-01", "2024-12-31", "2000-02-29"}
	for _, s := range valid {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2024-6-1", "2024-13-01", "2024-02-30", "01-06-2024", "2024-06-01T00:00:00Z", "not a date"}
	for _, s := range invalid {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}

func TestNormalizePlainDate(t *testing.T) {
	if got := Normalize("2024-06-01"); got != "2024-06-01" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeTrimsDatetimeSuffix(t *testing.T) {
	if got := Normalize("2024-06-01T00:00:00"); got != "2024-06-01" {
		t.Fatalf("got %q", got)
	}
}

// A reservation stored at local midnight must normalize to the same calendar
// day no matter the reader's timezone offset.
func TestNormalizeTimezoneIndependent(t *testing.T) {
	for _, s := range []string{
		"2024-06-01T00:00:00-03:00",
		"2024-06-01T00:00:00+13:00",
		"2024-06-01T23:59:59Z",
	} {
		if got := Normalize(s); got != "2024-06-01" {
			t.Errorf("Normalize(%q) = %q, want 2024-06-01", s, got)
		}
	}
}

// Legacy documents stored epoch numbers; both second and millisecond
// precision normalize to the local calendar day.
func TestNormalizeEpochDigits(t *testing.T) {
	noon := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

	if got := Normalize(strconv.FormatInt(noon.Unix(), 10)); got != "2024-06-01" {
		t.Errorf("seconds: got %q, want 2024-06-01", got)
	}
	if got := Normalize(strconv.FormatInt(noon.UnixMilli(), 10)); got != "2024-06-01" {
		t.Errorf("millis: got %q, want 2024-06-01", got)
	}

	// Short digit runs are not timestamps and pass through for validation.
	if got := Normalize("12345"); got != "12345" {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"2024-06-01", "2024-06-01T00:00:00-03:00", "1999-01-15T10:00:00Z"}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestFromTimeUsesOwnCalendarDay(t *testing.T) {
	loc := time.FixedZone("NZDT", 13*60*60)
	midnight := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
	if got := FromTime(midnight); got != "2024-06-01" {
		t.Fatalf("got %q, want 2024-06-01", got)
	}
	// Midnight at +13:00 is still May 31 in UTC. Shifting the value to UTC
	// before formatting would move the booking across midnight.
	if got := FromTime(midnight.UTC()); got != "2024-05-31" {
		t.Fatalf("UTC view: got %q, want 2024-05-31", got)
	}
}
