package cursor

import (
	"fmt"
	"time"

	"github.com/ganttsh/ganttsh/pkg/axis"
	"github.com/ganttsh/ganttsh/pkg/jalali"
)

// Locate maps an axis coordinate to the civil day containing it and that
// day's Jalali YYYY-MM-DD label.
func Locate(x axis.Coordinate) (time.Time, string, error) {
	day := x.Day()
	d, err := jalali.FromGregorian(day)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("cannot locate %.3f: %w", float64(x), err)
	}
	return day, d.Format(jalali.LayoutDate), nil
}
