package slot

import (
	"testing"
	"time"
)

func TestCatalog_TenSlotsInOrder(t *testing.T) {
	got := Catalog()
	want := []string{
		"08:00 AM", "09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
		"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	first := Catalog()
	first[0] = "mutated"
	if Catalog()[0] != "08:00 AM" {
		t.Fatalf("catalog was mutated through a returned slice")
	}
}

func TestClockTime(t *testing.T) {
	cases := []struct {
		label  string
		hour   int
		minute int
	}{
		{"08:00 AM", 8, 0},
		{"11:00 AM", 11, 0},
		{"12:00 PM", 12, 0},
		{"01:00 PM", 13, 0},
		{"05:00 PM", 17, 0},
		{"12:00 AM", 0, 0},
		{"09:30 AM", 9, 30},
	}
	for _, c := range cases {
		h, m, err := ClockTime(c.label)
		if err != nil {
			t.Fatalf("ClockTime(%q): unexpected error %v", c.label, err)
		}
		if h != c.hour || m != c.minute {
			t.Fatalf("ClockTime(%q): expected (%d, %d), got (%d, %d)", c.label, c.hour, c.minute, h, m)
		}
	}
}

func TestClockTime_Invalid(t *testing.T) {
	for _, label := range []string{"", "9 AM", "25:00 PM", "09:00", "banana"} {
		if _, _, err := ClockTime(label); err == nil {
			t.Fatalf("ClockTime(%q): expected error, got nil", label)
		}
	}
}

func TestIsCatalogLabel(t *testing.T) {
	if !IsCatalogLabel("09:00 AM") {
		t.Fatalf("expected 09:00 AM to be a catalog label")
	}
	if IsCatalogLabel("12:00 AM") {
		t.Fatalf("the catalog has no midnight slot")
	}
	if IsCatalogLabel("06:00 PM") {
		t.Fatalf("the catalog ends at 05:00 PM")
	}
}

func TestWindow(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	start, end, err := Window(date, "05:00 PM", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantStart := time.Date(2026, time.March, 14, 17, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, start)
	}
	if end.Sub(start) != time.Hour {
		t.Fatalf("expected a one-hour window, got %v", end.Sub(start))
	}
}
