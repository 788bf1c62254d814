package printer

import (
	"fmt"
	"time"
)

var elapsedUnits = []struct {
	size time.Duration
	name string
}{
	{size: 24 * time.Hour, name: "day"},
	{size: time.Hour, name: "hour"},
	{size: time.Minute, name: "minute"},
	{size: time.Second, name: "second"},
}

// Elapsed returns a human-readable duration between start and now using its biggest
// unit, e.g "1 minute", "45 seconds".
func Elapsed(start, now time.Time) string {
	diff := now.Sub(start)
	if diff < time.Second {
		return "less than a second"
	}

	for _, u := range elapsedUnits {
		if diff < u.size {
			continue
		}

		n := int(diff / u.size)
		if n == 1 {
			return "1 " + u.name
		}
		return fmt.Sprintf("%d %ss", n, u.name)
	}

	return "less than a second"
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
