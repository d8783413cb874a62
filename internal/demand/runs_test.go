package demand

import (
	"reflect"
	"testing"
)

func TestToggleInsertKeepsDescendingOrder(t *testing.T) {
	var s RunSelection
	s = s.Toggle("2024-01-05")
	s = s.Toggle("2024-01-10")
	s = s.Toggle("2024-01-01")

	want := RunSelection{"2024-01-10", "2024-01-05", "2024-01-01"}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("selection = %v, want %v", s, want)
	}
	if s.Primary() != "2024-01-10" {
		t.Errorf("primary = %q", s.Primary())
	}
}

func TestToggleRemove(t *testing.T) {
	s := RunSelection{"2024-01-10", "2024-01-05", "2024-01-01"}
	got := s.Toggle("2024-01-05")
	want := RunSelection{"2024-01-10", "2024-01-01"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selection = %v, want %v", got, want)
	}
	// receiver untouched
	if len(s) != 3 {
		t.Error("Toggle mutated its receiver")
	}
}

func TestToggleRemovePrimaryPromotesNext(t *testing.T) {
	s := RunSelection{"2024-01-10", "2024-01-05"}
	got := s.Toggle("2024-01-10")
	if got.Primary() != "2024-01-05" {
		t.Errorf("primary = %q, want 2024-01-05", got.Primary())
	}
}

func TestResetSelection(t *testing.T) {
	if got := ResetSelection(nil); len(got) != 0 {
		t.Errorf("reset with no runs = %v", got)
	}
	// picks the maximum even when the input is not sorted
	got := ResetSelection([]string{"2024-01-03", "2024-01-09", "2024-01-01"})
	if !reflect.DeepEqual(got, RunSelection{"2024-01-09"}) {
		t.Errorf("reset = %v, want the single most recent run", got)
	}
}

func TestNormalizeSelection(t *testing.T) {
	got := NormalizeSelection([]string{"2024-01-01", "", "2024-01-09", "2024-01-01"})
	want := RunSelection{"2024-01-09", "2024-01-01"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalized = %v, want %v", got, want)
	}
	if got.Primary() != "2024-01-09" {
		t.Errorf("primary = %q", got.Primary())
	}
}
