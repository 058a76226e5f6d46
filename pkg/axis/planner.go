package axis

import (
	"errors"
	"fmt"
	"time"

	"github.com/ganttsh/ganttsh/pkg/jalali"
)

var ErrInvalidSpan = errors.New("span ends before it starts")

// AutoLabelRotation is the label angle, in degrees, of AutoMultiscale charts.
const AutoLabelRotation = 45.0

type Tick struct {
	Coordinate Coordinate
	Time       time.Time
	Label      string
}

type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorRight
)

// Annotation is free text placed under the axis at Coordinate.
type Annotation struct {
	Coordinate Coordinate
	Text       string
	Anchor     Anchor
}

// Plan describes the time axis of one chart. Ticks sit at Gregorian
// coordinates and carry Jalali labels.
type Plan struct {
	Policy        Policy
	TotalDays     int
	ViewStart     time.Time
	ViewEnd       time.Time
	Major         []Tick
	Minor         []Tick
	LabelRotation float64
	Annotations   []Annotation
}

func (p Plan) ViewRange() (Coordinate, Coordinate) {
	return CoordinateOf(p.ViewStart), CoordinateOf(p.ViewEnd)
}

type Planner struct {
	weekAnchor time.Weekday
}

// NewPlanner returns a planner whose week ticks fall on weekAnchor.
func NewPlanner(weekAnchor time.Weekday) *Planner {
	return &Planner{weekAnchor: weekAnchor}
}

// Plan lays out the axis for tasks spanning minStart to maxEnd, both inclusive.
// The day count is taken between the Jalali forms of both ends.
func (p *Planner) Plan(minStart, maxEnd time.Time) (Plan, error) {
	startJ, err := jalali.FromGregorian(minStart)
	if err != nil {
		return Plan{}, fmt.Errorf("span start: %w", err)
	}
	endJ, err := jalali.FromGregorian(maxEnd)
	if err != nil {
		return Plan{}, fmt.Errorf("span end: %w", err)
	}
	if startJ.After(endJ) {
		return Plan{}, fmt.Errorf("%w: %s to %s", ErrInvalidSpan, startJ, endJ)
	}
	days, err := endJ.Sub(startJ)
	if err != nil {
		return Plan{}, err
	}

	first := jalali.Civil(minStart)
	last := jalali.Civil(maxEnd)
	plan := Plan{
		TotalDays: days + 1,
		ViewStart: first,
		ViewEnd:   last.AddDate(0, 0, 1),
	}
	plan.Policy = SelectPolicy(plan.TotalDays)

	switch plan.Policy {
	case Daily:
		var ticks []time.Time
		for t := first; !t.After(last); t = t.AddDate(0, 0, 1) {
			ticks = append(ticks, t)
		}
		plan.Major = p.majorTicks(ticks, plan.Policy)
		plan.Annotations = []Annotation{
			{Coordinate: CoordinateOf(first), Text: startJ.Format(jalali.LayoutMonthYear), Anchor: AnchorLeft},
			{Coordinate: CoordinateOf(last), Text: endJ.Format(jalali.LayoutMonthYear), Anchor: AnchorRight},
		}
	case WeeklyInMonth:
		majors := monthTicks(plan.ViewStart, plan.ViewEnd, 1)
		isMajor := make(map[time.Time]bool, len(majors))
		for _, t := range majors {
			isMajor[t] = true
		}
		var minors []time.Time
		for t := plan.ViewStart; !t.After(plan.ViewEnd); t = t.AddDate(0, 0, 1) {
			if t.Weekday() == p.weekAnchor && !isMajor[t] {
				minors = append(minors, t)
			}
		}
		plan.Major = p.majorTicks(majors, plan.Policy)
		plan.Minor = minorTicks(minors)
	default:
		plan.Major = p.majorTicks(autoTicks(plan.ViewStart, plan.ViewEnd), plan.Policy)
		plan.LabelRotation = AutoLabelRotation
	}
	return plan, nil
}

// Label formats t the way major ticks of policy are labeled. It returns an
// empty string for dates outside the convertible range.
func (p *Planner) Label(policy Policy, t time.Time) string {
	switch policy {
	case Daily:
		return label(t, jalali.LayoutWeekday)
	case WeeklyInMonth:
		return label(t, jalali.LayoutMonth)
	default:
		return label(t, jalali.LayoutDate)
	}
}

func (p *Planner) majorTicks(times []time.Time, policy Policy) []Tick {
	ticks := make([]Tick, 0, len(times))
	for _, t := range times {
		ticks = append(ticks, Tick{Coordinate: CoordinateOf(t), Time: t, Label: p.Label(policy, t)})
	}
	return ticks
}

// minorTicks only appear on WeeklyInMonth charts and carry the day of month.
func minorTicks(times []time.Time) []Tick {
	ticks := make([]Tick, 0, len(times))
	for _, t := range times {
		ticks = append(ticks, Tick{Coordinate: CoordinateOf(t), Time: t, Label: label(t, jalali.LayoutDay)})
	}
	return ticks
}

func label(t time.Time, layout string) string {
	d, err := jalali.FromGregorian(t)
	if err != nil {
		return ""
	}
	return d.Format(layout)
}
