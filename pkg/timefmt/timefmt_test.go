package timefmt_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailtrack/pkg/timefmt"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	t.Run("nil renders never", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, timefmt.Never, timefmt.FormatDate(nil))
	})

	t.Run("zero renders never", func(t *testing.T) {
		t.Parallel()
		var zero time.Time
		assert.Equal(t, timefmt.Never, timefmt.FormatDate(&zero))
	})

	t.Run("converts to cairo", func(t *testing.T) {
		t.Parallel()
		// Egypt has no DST in January, UTC+2.
		ts := time.Date(2024, time.January, 15, 22, 30, 5, 0, time.UTC)
		assert.Equal(t, "01/16/2024, 00:30:05 (Egypt)", timefmt.FormatDate(&ts))
	})

	t.Run("keeps the instant for offset inputs", func(t *testing.T) {
		t.Parallel()
		ts := time.Date(2024, time.January, 15, 14, 0, 0, 0, time.FixedZone("EET", 2*3600))
		assert.Equal(t, "01/15/2024, 14:00:00 (Egypt)", timefmt.FormatDate(&ts))
	})
}

func TestTimeAgo(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"future", -5 * time.Second, "In the future"},
		{"zero seconds", 0, "0 seconds ago"},
		{"one second", time.Second, "1 second ago"},
		{"seconds", 59 * time.Second, "59 seconds ago"},
		{"one minute", 60 * time.Second, "1 minute ago"},
		{"minutes", 59*time.Minute + 59*time.Second, "59 minutes ago"},
		{"one hour", time.Hour, "1 hour ago"},
		{"hours", 23 * time.Hour, "23 hours ago"},
		{"one day", 24 * time.Hour, "1 day ago"},
		{"days", 10 * 24 * time.Hour, "10 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, timefmt.TimeAgo(now, now.Add(-tt.ago)))
		})
	}
}

func TestTimeAgoIsMonotonic(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	rank := map[string]int{"second": 0, "seconds": 0, "minute": 1, "minutes": 1, "hour": 2, "hours": 2, "day": 3, "days": 3}

	type reading struct {
		unit  int
		value int
	}
	parse := func(s string) reading {
		var n int
		var unit string
		_, err := fmt.Sscanf(s, "%d %s ago", &n, &unit)
		assert.NoError(t, err, s)
		return reading{unit: rank[unit], value: n}
	}

	prev := reading{unit: -1}
	// Walk from the most recent instant to the oldest one.
	for ago := time.Duration(0); ago < 40*24*time.Hour; ago += 17 * time.Minute {
		cur := parse(timefmt.TimeAgo(now, now.Add(-ago)))
		if cur.unit == prev.unit {
			assert.GreaterOrEqual(t, cur.value, prev.value)
		} else {
			assert.Greater(t, cur.unit, prev.unit)
		}
		prev = cur
	}
}
