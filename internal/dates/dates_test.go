package dates

import (
	"testing"
	"time"
)

// Sunday afternoon.
var now = time.Date(2024, time.June, 30, 15, 4, 0, 0, time.Local)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "2024-06-30"},
		{"today", "2024-06-30"},
		{"TODAY", "2024-06-30"},
		{"yesterday", "2024-06-29"},
		{"last_week", "2024-06-23"},
		{"monday", "2024-06-24"},
		{"sat", "2024-06-29"},
		{"sunday", "2024-06-23"},
		{"Friday", "2024-06-28"},
		{"2024-02-29", "2024-02-29"},
		{" 2023-12-31 ", "2023-12-31"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in, now)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if s := got.Format("2006-01-02"); s != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, s, tt.want)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("Parse(%q) not at midnight: %v", tt.in, got)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"tomorrow-ish", "2024-13-01", "2024-02-30", "30/06/2024"} {
		if _, err := Parse(in, now); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(now); got != "Sun 2024-06-30" {
		t.Fatalf("Label = %q", got)
	}
}
