package event_bus

import "time"

const (
	TaskAddedEvent      EventType = "task.added"
	TaskRemovedEvent    EventType = "task.removed"
	TasksClearedEvent   EventType = "task.cleared"
	ChartGeneratedEvent EventType = "chart.generated"
	ChartReleasedEvent  EventType = "chart.released"
)

type TaskAdded struct {
	Id       string
	Name     string
	Start    time.Time
	End      time.Time
	Color    string
	Duration int
}

type TaskRemoved struct {
	Id   string
	Name string
}

type TasksCleared struct {
	Count int
}

type ChartGenerated struct {
	Policy    string
	TotalDays int
	Tasks     int
}

type ChartReleased struct {
	Reason string
}
