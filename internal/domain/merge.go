package domain

import "time"

// Validity windows for the two source catalogs. The old export is trusted
// before 2019, the recent export from 2000 onward; the windows meet at the
// boundary instead of overlapping, so any merged event satisfies exactly one
// of the two predicates.
var (
	OldCatalogWindow    = Window{Before: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)}
	RecentCatalogWindow = Window{NotBefore: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
)

// Window is a half-open validity interval [NotBefore, Before).
// A zero bound is unbounded on that side.
type Window struct {
	NotBefore time.Time
	Before    time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.NotBefore.IsZero() && t.Before(w.NotBefore) {
		return false
	}
	if !w.Before.IsZero() && !t.Before(w.Before) {
		return false
	}
	return true
}

// FilterWindow returns the events whose timestamps fall inside the window,
// preserving order.
func FilterWindow(events []SeismicEvent, w Window) []SeismicEvent {
	out := make([]SeismicEvent, 0, len(events))
	for _, ev := range events {
		if w.Contains(ev.Time) {
			out = append(out, ev)
		}
	}
	return out
}

// Dedup removes events sharing a timestamp with an earlier event, keeping
// the first occurrence. Idempotent: applying it to its own output is a no-op.
func Dedup(events []SeismicEvent) []SeismicEvent {
	seen := make(map[int64]struct{}, len(events))
	out := make([]SeismicEvent, 0, len(events))
	for _, ev := range events {
		key := ev.Time.UnixNano()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ev)
	}
	return out
}

// MergeCatalogs filters each catalog to its validity window, concatenates
// old-then-recent, and deduplicates by exact timestamp. When both catalogs
// carry the same instant the old catalog's row wins, because its filtered
// rows come first.
func MergeCatalogs(old, recent []SeismicEvent, oldWindow, recentWindow Window) []SeismicEvent {
	combined := make([]SeismicEvent, 0, len(old)+len(recent))
	combined = append(combined, FilterWindow(old, oldWindow)...)
	combined = append(combined, FilterWindow(recent, recentWindow)...)
	return Dedup(combined)
}
