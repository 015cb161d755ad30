package world

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeFormat renders a duration for player-facing countdowns. Short
// durations keep sub-second precision, longer ones round to clock
// notation.
func TimeFormat(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 10:
		return fmt.Sprintf("%.1f seconds", secs)
	case secs < 60:
		return fmt.Sprintf("%d seconds", int(secs))
	case secs < 3600:
		return fmt.Sprintf("%d:%02d", int(secs)/60, int(secs)%60)
	default:
		s := int(secs)
		return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
	}
}

// TimeRemaining is how much of a timer started at start with the given
// length is left as of now.
func TimeRemaining(start time.Time, length time.Duration, now time.Time) time.Duration {
	return start.Add(length).Sub(now)
}

// CJoin joins items into an English list: "a", "a and b",
// "a, b and c". With the flag set each item gets a "the " prefix.
// Items are sorted; the empty list yields "".
func CJoin(items []string, the bool) string {
	if len(items) == 0 {
		return ""
	}
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	if the {
		for i, it := range sorted {
			sorted[i] = "the " + it
		}
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	return strings.Join(sorted[:len(sorted)-1], ", ") + " and " + sorted[len(sorted)-1]
}
