package timezone

import (
	"fmt"
	"time"
)

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Shanghai")
	if err != nil {
		panic(err)
	}
}

// upstream clock values are Beijing wall time with no offset
// attached, so every date computation pins to that location no
// matter where the process runs
func Now() time.Time {
	return time.Now().In(Location)
}

// ParseClock resolves an "HHMM" wall-clock string against day,
// e.g. ("0930", 2024-08-26) -> 2024-08-26 09:30 Beijing time.
func ParseClock(clock string, day time.Time) (time.Time, error) {
	parsed, err := time.ParseInLocation("1504", clock, Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad clock value %q: %w", clock, err)
	}
	day = day.In(Location)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		Location,
	), nil
}
