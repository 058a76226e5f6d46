package jalali

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jalaali/go-jalaali"
)

// Years outside this range cannot be converted by the underlying calendar algorithm.
const (
	MinYear = 1
	MaxYear = 3177
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrDateOutOfRange    = errors.New("date out of range")
)

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Date is a Jalali (Solar Hijri) calendar date. The zero value is not a valid date;
// use Parse or FromGregorian to construct one.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Parse reads a date in the YYYY-MM-DD form. Month and day are checked against the
// month lengths of the given year: months 1-6 have 31 days, 7-11 have 30 and the
// last month has 29, or 30 in leap years.
func Parse(text string) (Date, error) {
	parts := datePattern.FindStringSubmatch(text)
	if parts == nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, text)
	}
	year, _ := strconv.Atoi(parts[1])
	month, _ := strconv.Atoi(parts[2])
	day, _ := strconv.Atoi(parts[3])

	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate reports ErrDateOutOfRange when d does not name a real calendar day.
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("%w: year %d not in %d..%d", ErrDateOutOfRange, d.Year, MinYear, MaxYear)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d not in 1..12", ErrDateOutOfRange, d.Month)
	}
	length := MonthLength(d.Year, d.Month)
	if d.Day < 1 || d.Day > length {
		return fmt.Errorf("%w: month %d of year %d has %d days, got day %d", ErrDateOutOfRange, d.Month, d.Year, length, d.Day)
	}
	return nil
}

// IsLeap reports whether the last month of year has 30 days.
func IsLeap(year int) bool {
	if year < MinYear || year > MaxYear {
		return false
	}
	g, err := toGregorian(year, 12, 30)
	if err != nil {
		return false
	}
	jy, jm, jd, err := jalaali.ToJalaali(g.Year(), g.Month(), g.Day())
	return err == nil && jy == year && int(jm) == 12 && jd == 30
}

// MonthLength returns the number of days in month of year, or 0 for a month outside 1..12.
func MonthLength(year, month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	case month == 12:
		if IsLeap(year) {
			return 30
		}
		return 29
	}
	return 0
}

// Gregorian converts d to the Gregorian calendar. The result is midnight UTC.
func (d Date) Gregorian() (time.Time, error) {
	if err := d.Validate(); err != nil {
		return time.Time{}, err
	}
	return toGregorian(d.Year, d.Month, d.Day)
}

// FromGregorian converts the civil date of t, in t's own location, to the Jalali calendar.
func FromGregorian(t time.Time) (Date, error) {
	gy, gm, gd := t.Date()
	jy, jm, jd, err := jalaali.ToJalaali(gy, gm, gd)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d: %v", ErrDateOutOfRange, gy, gm, gd, err)
	}
	d := Date{Year: jy, Month: int(jm), Day: jd}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

func toGregorian(year, month, day int) (time.Time, error) {
	gy, gm, gd, err := jalaali.ToGregorian(year, jalaali.Month(month), day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d: %v", ErrDateOutOfRange, year, month, day, err)
	}
	return time.Date(gy, gm, gd, 0, 0, 0, 0, time.UTC), nil
}

// Civil truncates t to midnight UTC of its calendar day.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayNumber counts days since 1970-01-01 for the civil date of t.
func DayNumber(t time.Time) int64 {
	secs := Civil(t).Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}
	return days
}

// DaysBetween returns the number of civil days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DayNumber(b) - DayNumber(a))
}

// Sub returns the number of days from other to d.
func (d Date) Sub(other Date) (int, error) {
	a, err := d.Gregorian()
	if err != nil {
		return 0, err
	}
	b, err := other.Gregorian()
	if err != nil {
		return 0, err
	}
	return DaysBetween(b, a), nil
}

// AddDays moves d by n days, which may be negative.
func (d Date) AddDays(n int) (Date, error) {
	g, err := d.Gregorian()
	if err != nil {
		return Date{}, err
	}
	return FromGregorian(g.AddDate(0, 0, n))
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() (time.Weekday, error) {
	g, err := d.Gregorian()
	if err != nil {
		return 0, err
	}
	return g.Weekday(), nil
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(d.Month, other.Month)
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// String returns d in the YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
