package dateutil

import "testing"

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		date string
		n    int
		want string
	}{
		{"forward", "2024-01-01", 1, "2024-01-02"},
		{"backward", "2024-01-01", -1, "2023-12-31"},
		{"month boundary", "2024-01-31", 1, "2024-02-01"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"year boundary", "2023-12-31", 1, "2024-01-01"},
		{"zero", "2024-06-15", 0, "2024-06-15"},
		{"week back", "2024-03-07", -6, "2024-03-01"},
		{"unparseable stays put", "not-a-date", 3, "not-a-date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddDays(tt.date, tt.n); got != tt.want {
				t.Errorf("AddDays(%q, %d) = %q, want %q", tt.date, tt.n, got, tt.want)
			}
		})
	}
}

func TestFormatWithWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01", "2024-01-01 (Mon)"}, // 2024-01-01 was a Monday
		{"2024-01-07", "2024-01-07 (Sun)"},
		{"2023-12-30", "2023-12-30 (Sat)"},
		{"short", "short"},
		{"", ""},
		{"9999-99-99", "9999-99-99"},
	}
	for _, tt := range tests {
		if got := FormatWithWeekday(tt.in); got != tt.want {
			t.Errorf("FormatWithWeekday(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompositeKey(t *testing.T) {
	if got := CompositeKey("P1", "2024-01-01"); got != "P1\t2024-01-01" {
		t.Errorf("CompositeKey = %q", got)
	}
	// ids containing the visually likely separators must not collide
	if CompositeKey("a-b", "c") == CompositeKey("a", "b-c") {
		t.Error("composite keys collided")
	}
}

func TestDateKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-02", "2024-01-02"},
		{"2024-01-02T15:04:05Z", "2024-01-02"},
		{" 2024-01-02", "2024-01-02"},
		{"2024-1-2", ""},
		{"garbage!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DateKey(tt.in); got != tt.want {
			t.Errorf("DateKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-01", 1},
		{"2024-01-01", "2024-01-07", 7},
		{"2024-01-07", "2024-01-01", 0}, // inverted range
		{"2024-02-27", "2024-03-01", 4}, // across leap day
		{"bad", "2024-01-01", 0},
		{"2024-01-01", "bad", 0},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("DaysBetween(%q, %q) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}
