package axis

import (
	"time"

	"github.com/ganttsh/ganttsh/pkg/jalali"
)

type frequency int

const (
	yearly frequency = iota
	monthly
	daily
)

// autoRule bounds the tick count of one frequency. The interval is the
// smallest one that keeps the span within maxTicks.
type autoRule struct {
	freq      frequency
	maxTicks  int
	intervals []int
}

const autoMinTicks = 5

var autoRules = []autoRule{
	{freq: yearly, maxTicks: 11, intervals: []int{1, 2, 4, 5, 10, 20, 40, 50, 100, 200, 400, 500, 1000, 2000, 4000, 5000, 10000}},
	{freq: monthly, maxTicks: 12, intervals: []int{1, 2, 3, 4, 6}},
	{freq: daily, maxTicks: 11, intervals: []int{1, 2, 3, 7, 14, 21}},
}

// autoTicks picks readable tick dates within [from, to]. The coarsest
// frequency with at least autoMinTicks units in the span wins, and ticks land
// on multiples of the interval: Jan 1st of every Nth year, the 1st of every
// Nth month, or fixed days of the month.
func autoTicks(from, to time.Time) []time.Time {
	months := monthsBetween(from, to)
	nums := map[frequency]int{
		yearly:  months / 12,
		monthly: months,
		daily:   jalali.DaysBetween(from, to),
	}

	for _, rule := range autoRules {
		num := nums[rule.freq]
		if num < autoMinTicks {
			continue
		}
		interval := rule.intervals[len(rule.intervals)-1]
		for _, iv := range rule.intervals {
			if num <= iv*(rule.maxTicks-1) {
				interval = iv
				break
			}
		}
		switch rule.freq {
		case yearly:
			return yearTicks(from, to, interval)
		case monthly:
			return monthTicks(from, to, interval)
		default:
			return dayOfMonthTicks(from, to, interval)
		}
	}
	return dayOfMonthTicks(from, to, 1)
}

func yearTicks(from, to time.Time, interval int) []time.Time {
	var ticks []time.Time
	for y := from.Year(); y <= to.Year(); y++ {
		if y%interval != 0 {
			continue
		}
		t := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		if inRange(t, from, to) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

func monthTicks(from, to time.Time, interval int) []time.Time {
	var ticks []time.Time
	t := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !t.After(to) {
		if (int(t.Month())-1)%interval == 0 && inRange(t, from, to) {
			ticks = append(ticks, t)
		}
		t = t.AddDate(0, 1, 0)
	}
	return ticks
}

func dayOfMonthTicks(from, to time.Time, interval int) []time.Time {
	days := make(map[int]bool)
	switch interval {
	case 7:
		for _, d := range []int{1, 8, 15, 22} {
			days[d] = true
		}
	case 14:
		days[1], days[15] = true, true
	default:
		for d := 1; d <= 31; d += interval {
			days[d] = true
		}
	}

	var ticks []time.Time
	for t := jalali.Civil(from); !t.After(to); t = t.AddDate(0, 0, 1) {
		if days[t.Day()] && inRange(t, from, to) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

// monthsBetween counts whole months from a to b. A month whose day does not
// exist in the target month ends on the target month's last day.
func monthsBetween(a, b time.Time) int {
	if b.Before(a) {
		return -monthsBetween(b, a)
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	for months > 0 && addMonthsClipped(a, months).After(b) {
		months--
	}
	return months
}

func addMonthsClipped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, months, 0)
	lastDay := target.AddDate(0, 1, -1).Day()
	d := t.Day()
	if d > lastDay {
		d = lastDay
	}
	return target.AddDate(0, 0, d-1)
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
