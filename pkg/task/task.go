package task

import (
	"fmt"
	"time"

	"github.com/ganttsh/ganttsh/pkg/jalali"
	"github.com/google/uuid"
)

// Task is one validated bar of the chart. Start and End are Gregorian civil
// dates at midnight UTC, both inclusive. Tasks are never edited in place.
type Task struct {
	Id       uuid.UUID
	Name     string
	Start    time.Time
	End      time.Time
	Color    Color
	Duration int
}

// Draft holds the raw user input an add-task request starts from.
type Draft struct {
	Name  string
	Start string
	End   string
	Color string
}

// JalaliStart returns the start date in the user's calendar.
func (t Task) JalaliStart() (jalali.Date, error) {
	d, err := jalali.FromGregorian(t.Start)
	if err != nil {
		return jalali.Date{}, fmt.Errorf("task %s start: %w", t.Id, err)
	}
	return d, nil
}

// JalaliEnd returns the end date in the user's calendar.
func (t Task) JalaliEnd() (jalali.Date, error) {
	d, err := jalali.FromGregorian(t.End)
	if err != nil {
		return jalali.Date{}, fmt.Errorf("task %s end: %w", t.Id, err)
	}
	return d, nil
}
