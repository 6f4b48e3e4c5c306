package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	oldWindow    = Window{Before: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)}
	recentWindow = Window{NotBefore: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
)

func TestWindowContains(t *testing.T) {
	boundary := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, oldWindow.Contains(boundary.Add(-time.Second)))
	assert.False(t, oldWindow.Contains(boundary), "Before bound is exclusive")
	assert.True(t, recentWindow.Contains(recentWindow.NotBefore), "NotBefore bound is inclusive")
	assert.False(t, recentWindow.Contains(recentWindow.NotBefore.Add(-time.Millisecond)))

	unbounded := Window{}
	assert.True(t, unbounded.Contains(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFilterWindow(t *testing.T) {
	events := []SeismicEvent{
		eventAt(time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC), 38, 140),
		eventAt(time.Date(2005, 6, 1, 0, 0, 0, 0, time.UTC), 38, 140),
		eventAt(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), 38, 140),
	}

	kept := FilterWindow(events, recentWindow)
	require.Len(t, kept, 2)
	assert.Equal(t, 2005, kept[0].Time.Year())

	kept = FilterWindow(events, oldWindow)
	require.Len(t, kept, 2)
	assert.Equal(t, 1999, kept[0].Time.Year())
}

func TestDedup(t *testing.T) {
	ts := time.Date(2010, 5, 2, 3, 4, 5, 0, time.UTC)
	a := eventAt(ts, 38, 140)
	a.Magnitude = 5.5
	b := eventAt(ts, 39, 141) // same instant, different reading
	b.Magnitude = 5.7
	c := eventAt(ts.Add(time.Minute), 38, 140)

	out := Dedup([]SeismicEvent{a, b, c})

	require.Len(t, out, 2)
	assert.Equal(t, 5.5, out[0].Magnitude, "first occurrence wins")
	assert.Equal(t, c.Time, out[1].Time)
}

func TestDedup_Idempotent(t *testing.T) {
	ts := time.Date(2010, 5, 2, 3, 4, 5, 0, time.UTC)
	events := []SeismicEvent{
		eventAt(ts, 38, 140),
		eventAt(ts, 38, 140),
		eventAt(ts.Add(time.Hour), 36, 139),
		eventAt(ts.Add(2*time.Hour), 36, 139),
	}

	once := Dedup(events)
	twice := Dedup(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("dedup not idempotent (-once +twice):\n%s", diff)
	}
}

func TestMergeCatalogs(t *testing.T) {
	t.Run("window boundary duplicate keeps old catalog's row", func(t *testing.T) {
		ts := time.Date(2018, 12, 31, 23, 59, 59, 0, time.UTC)
		fromOld := eventAt(ts, 38.0, 140.0)
		fromOld.Magnitude = 4.8
		fromRecent := eventAt(ts, 38.0, 140.0)
		fromRecent.Magnitude = 4.9

		merged := MergeCatalogs(
			[]SeismicEvent{fromOld},
			[]SeismicEvent{fromRecent},
			oldWindow, recentWindow,
		)

		require.Len(t, merged, 1)
		assert.Equal(t, 4.8, merged[0].Magnitude)
	})

	t.Run("each catalog filtered to its own window", func(t *testing.T) {
		old := []SeismicEvent{
			eventAt(time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC), 38, 140),
			// Beyond the old catalog's window, must be dropped.
			eventAt(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), 38, 140),
		}
		recent := []SeismicEvent{
			// Predates the recent catalog's window, must be dropped.
			eventAt(time.Date(1999, 6, 1, 0, 0, 0, 0, time.UTC), 38, 140),
			eventAt(time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), 38, 140),
		}

		merged := MergeCatalogs(old, recent, oldWindow, recentWindow)

		require.Len(t, merged, 2)
		assert.Equal(t, 2018, merged[0].Time.Year())
		assert.Equal(t, 2022, merged[1].Time.Year())
	})

	t.Run("no duplicates in output", func(t *testing.T) {
		base := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
		var old, recent []SeismicEvent
		for i := 0; i < 50; i++ {
			old = append(old, eventAt(base.Add(time.Duration(i)*time.Hour), 38, 140))
		}
		for i := 25; i < 75; i++ {
			recent = append(recent, eventAt(base.Add(time.Duration(i)*time.Hour), 38, 140))
		}

		merged := MergeCatalogs(old, recent, oldWindow, recentWindow)

		require.Len(t, merged, 75)
		seen := make(map[int64]bool)
		for _, ev := range merged {
			assert.False(t, seen[ev.Time.UnixNano()], "duplicate timestamp %v", ev.Time)
			seen[ev.Time.UnixNano()] = true
		}
	})
}
