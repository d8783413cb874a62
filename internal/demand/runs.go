// backend-go/internal/demand/runs.go
package demand

import "sort"

// RunSelection is the ordered set of forecast run dates selected for
// overlay comparison, always sorted descending. When non-empty, the first
// element is the maximum date in the set and acts as the primary run for
// MergeSeries. Methods return a new selection; the receiver is never
// mutated.
type RunSelection []string

// Contains reports whether runDate is selected.
func (s RunSelection) Contains(runDate string) bool {
	for _, r := range s {
		if r == runDate {
			return true
		}
	}
	return false
}

// Toggle removes runDate when present, otherwise inserts it and restores
// the descending order.
func (s RunSelection) Toggle(runDate string) RunSelection {
	if s.Contains(runDate) {
		out := make(RunSelection, 0, len(s)-1)
		for _, r := range s {
			if r != runDate {
				out = append(out, r)
			}
		}
		return out
	}
	out := make(RunSelection, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, runDate)
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// Primary returns the most recent selected run, or "" when nothing is
// selected.
func (s RunSelection) Primary() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// ResetSelection is the initial state after a product change: the single
// most recent available run, or empty when the product has none.
func ResetSelection(available []string) RunSelection {
	if len(available) == 0 {
		return nil
	}
	max := available[0]
	for _, r := range available[1:] {
		if r > max {
			max = r
		}
	}
	return RunSelection{max}
}

// NormalizeSelection sorts caller-supplied run dates descending and drops
// duplicates, re-establishing the RunSelection invariant for input that
// arrives over the wire.
func NormalizeSelection(runs []string) RunSelection {
	seen := make(map[string]struct{}, len(runs))
	out := make(RunSelection, 0, len(runs))
	for _, r := range runs {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
