package livesession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("time left before deadline", func(t *testing.T) {
		got := Remaining(now, now.Add(5*time.Minute))
		assert.Equal(t, 5*time.Minute, got)
	})

	t.Run("clamps to zero past deadline", func(t *testing.T) {
		got := Remaining(now, now.Add(-time.Minute))
		assert.Equal(t, time.Duration(0), got)
	})

	t.Run("zero at deadline", func(t *testing.T) {
		got := Remaining(now, now)
		assert.Equal(t, time.Duration(0), got)
	})
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "under an hour", d: 4*time.Minute + 59*time.Second, want: "04:59"},
		{name: "zero", d: 0, want: "00:00"},
		{name: "negative clamps to zero", d: -time.Minute, want: "00:00"},
		{name: "exactly one hour", d: time.Hour, want: "1:00:00"},
		{name: "over an hour", d: 2*time.Hour + 5*time.Minute + 3*time.Second, want: "2:05:03"},
		{name: "sub-second rounds", d: 30*time.Second + 400*time.Millisecond, want: "00:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRemaining(tt.d))
		})
	}
}
