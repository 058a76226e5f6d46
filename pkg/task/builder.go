package task

import (
	"fmt"
	"strings"

	"github.com/ganttsh/ganttsh/pkg/jalali"
)

// Build validates a draft and turns it into a Task without an Id. Checks run in
// a fixed order and the first failure is returned:
// name, start date, end date, end not before start, color.
func Build(draft Draft) (Task, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return Task{}, ErrEmptyName
	}

	startDate, err := jalali.Parse(strings.TrimSpace(draft.Start))
	if err != nil {
		return Task{}, fmt.Errorf("%w (%s): %w", ErrInvalidStartDate, MonthRule, err)
	}
	endDate, err := jalali.Parse(strings.TrimSpace(draft.End))
	if err != nil {
		return Task{}, fmt.Errorf("%w (%s): %w", ErrInvalidEndDate, MonthRule, err)
	}

	if endDate.Before(startDate) {
		return Task{}, fmt.Errorf("%w: %s is before %s", ErrEndBeforeStart, endDate, startDate)
	}

	start, err := startDate.Gregorian()
	if err != nil {
		return Task{}, fmt.Errorf("%w: %w", ErrInvalidStartDate, err)
	}
	end, err := endDate.Gregorian()
	if err != nil {
		return Task{}, fmt.Errorf("%w: %w", ErrInvalidEndDate, err)
	}

	color, err := ResolveColor(draft.Color)
	if err != nil {
		return Task{}, err
	}

	return Task{
		Name:     name,
		Start:    start,
		End:      end,
		Color:    color,
		Duration: jalali.DaysBetween(start, end) + 1,
	}, nil
}
