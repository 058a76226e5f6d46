package jalali

import (
	"strconv"
	"strings"
	"time"
)

// Layouts understood by Date.Format.
const (
	LayoutDate      = "%Y-%m-%d"
	LayoutMonthYear = "%b %Y"
	LayoutMonth     = "%b"
	LayoutWeekday   = "%A"
	LayoutDay       = "%d"
)

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

var weekdayNames = map[time.Weekday]string{
	time.Saturday:  "شنبه",
	time.Sunday:    "یکشنبه",
	time.Monday:    "دوشنبه",
	time.Tuesday:   "سه‌شنبه",
	time.Wednesday: "چهارشنبه",
	time.Thursday:  "پنجشنبه",
	time.Friday:    "جمعه",
}

var weekdayShortNames = map[time.Weekday]string{
	time.Saturday:  "ش",
	time.Sunday:    "ی",
	time.Monday:    "د",
	time.Tuesday:   "س",
	time.Wednesday: "چ",
	time.Thursday:  "پ",
	time.Friday:    "ج",
}

// MonthName returns the Persian name of month, or "" outside 1..12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// WeekdayName returns the Persian name of the weekday.
func WeekdayName(w time.Weekday) string {
	return weekdayNames[w]
}

// Format renders d using strftime-like verbs:
//
//	%Y  four digit year
//	%m  two digit month
//	%d  two digit day of month
//	%B  month name (%b is the same, Persian month names have no abbreviation)
//	%A  weekday name
//	%a  one letter weekday
//	%%  a literal percent sign
//
// Unknown verbs are copied through. Weekday verbs render empty for an invalid date.
func (d Date) Format(layout string) string {
	var b strings.Builder
	runes := []rune(layout)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i == len(runes)-1 {
			b.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 'Y':
			b.WriteString(pad(d.Year, 4))
		case 'm':
			b.WriteString(pad(d.Month, 2))
		case 'd':
			b.WriteString(pad(d.Day, 2))
		case 'B', 'b':
			b.WriteString(MonthName(d.Month))
		case 'A':
			if w, err := d.Weekday(); err == nil {
				b.WriteString(weekdayNames[w])
			}
		case 'a':
			if w, err := d.Weekday(); err == nil {
				b.WriteString(weekdayShortNames[w])
			}
		case '%':
			b.WriteRune('%')
		default:
			b.WriteRune('%')
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
