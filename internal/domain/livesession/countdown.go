package livesession

import (
	"fmt"
	"time"
)

// Remaining derives the time left until the auto-expiry deadline. The
// presentation layer calls this on each tick; it holds no authority over
// whether a session is active.
func Remaining(now, autoEndTime time.Time) time.Duration {
	d := autoEndTime.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatRemaining renders a duration as a "mm:ss" countdown string.
// Durations of an hour or more include the hour component ("h:mm:ss").
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	seconds := int((d % time.Minute) / time.Second)

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
