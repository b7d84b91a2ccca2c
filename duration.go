package numfmt

import (
	"strconv"
	"strings"
	"time"
)

// DurationStyle selects the unit spelling of FormatDuration.
type DurationStyle string

const (
	// DurationShort renders "1d 2h 3m 4s".
	DurationShort DurationStyle = "short"
	// DurationLong renders "1 day 2 hours 3 minutes 4 seconds".
	DurationLong DurationStyle = "long"
)

type durationUnit struct {
	size         time.Duration
	short        string
	long, plural string
}

var durationUnits = []durationUnit{
	{24 * time.Hour, "d", "day", "days"},
	{time.Hour, "h", "hour", "hours"},
	{time.Minute, "m", "minute", "minutes"},
	{time.Second, "s", "second", "seconds"},
}

// FormatDuration spells d in days, hours, minutes and seconds, skipping zero
// components. Durations under a second render as milliseconds ("250ms").
func FormatDuration(d time.Duration, style DurationStyle) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	if d < time.Second {
		return sign + strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	}

	var parts []string
	for _, unit := range durationUnits {
		n := d / unit.size
		if n == 0 {
			continue
		}
		d -= n * unit.size
		count := strconv.FormatInt(int64(n), 10)
		switch style {
		case DurationLong:
			label := unit.plural
			if n == 1 {
				label = unit.long
			}
			parts = append(parts, count+" "+label)
		default:
			parts = append(parts, count+unit.short)
		}
	}
	return sign + strings.Join(parts, " ")
}
