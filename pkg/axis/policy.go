package axis

// Policy is the tick spacing and labeling strategy of one chart.
type Policy int

const (
	Daily Policy = iota
	WeeklyInMonth
	AutoMultiscale
)

// Spans up to DailyMaxDays inclusive days get one tick per day; up to
// WeeklyMaxDays they get month and week ticks. Longer spans use the auto locator.
const (
	DailyMaxDays  = 8
	WeeklyMaxDays = 32
)

func SelectPolicy(totalDays int) Policy {
	switch {
	case totalDays <= DailyMaxDays:
		return Daily
	case totalDays <= WeeklyMaxDays:
		return WeeklyInMonth
	default:
		return AutoMultiscale
	}
}

func (p Policy) String() string {
	switch p {
	case Daily:
		return "daily"
	case WeeklyInMonth:
		return "weekly_in_month"
	case AutoMultiscale:
		return "auto_multiscale"
	default:
		return "unknown"
	}
}
