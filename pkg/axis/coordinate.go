package axis

import (
	"math"
	"time"

	"github.com/ganttsh/ganttsh/pkg/jalali"
)

const day = 24 * time.Hour

// Coordinate is a position on the time axis: days since 1970-01-01T00:00Z.
// The fractional part is the time of day.
type Coordinate float64

// CoordinateOf places t on the axis.
func CoordinateOf(t time.Time) Coordinate {
	u := t.UTC()
	days := jalali.DayNumber(u)
	frac := float64(u.Sub(jalali.Civil(u))) / float64(day)
	return Coordinate(float64(days) + frac)
}

// Time decodes c to an instant in UTC, rounded to the microsecond.
func (c Coordinate) Time() time.Time {
	days := math.Floor(float64(c))
	frac := float64(c) - days
	base := time.Unix(int64(days)*86400, 0).UTC()
	return base.Add(time.Duration(frac * float64(day)).Round(time.Microsecond))
}

// Day returns the civil day containing c, at midnight UTC.
func (c Coordinate) Day() time.Time {
	return time.Unix(int64(math.Floor(float64(c)))*86400, 0).UTC()
}
