package task

import (
	"context"
	"fmt"
	"time"

	"github.com/ganttsh/ganttsh/internal/event_bus"
	"github.com/ganttsh/ganttsh/internal/utils"
	"github.com/ganttsh/ganttsh/pkg/jalali"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultSpanDays is how far the suggested end date lies after the suggested start.
const DefaultSpanDays = 7

type Service interface {
	AddTask(ctx context.Context, draft Draft) (Task, error)
	RemoveTask(ctx context.Context, id uuid.UUID) error
	ClearAll(ctx context.Context) error
	ListTasks(ctx context.Context) ([]Task, error)
	Span(ctx context.Context) (time.Time, time.Time, error)
	DefaultDates(ctx context.Context) (jalali.Date, jalali.Date, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

// AddTask validates the draft and appends the resulting task. Nothing is
// stored when validation fails.
func (s *ServiceImpl) AddTask(ctx context.Context, draft Draft) (Task, error) {
	task, err := Build(draft)
	if err != nil {
		log.Debugf("rejected task %q: %v", draft.Name, err)
		return Task{}, err
	}

	stored, err := s.repo.Add(ctx, task)
	if err != nil {
		return Task{}, fmt.Errorf("failed to store task: %w", err)
	}
	log.Debugf("task %s (%q) added, %d days", stored.Id, stored.Name, stored.Duration)

	// The task is stored at this point; a failing subscriber must not turn a
	// successful add into an error the user would retry.
	s.publish(ctx, event_bus.TaskAddedEvent, event_bus.TaskAdded{
		Id:       stored.Id.String(),
		Name:     stored.Name,
		Start:    stored.Start,
		End:      stored.End,
		Color:    stored.Color.Key,
		Duration: stored.Duration,
	})
	return stored, nil
}

func (s *ServiceImpl) RemoveTask(ctx context.Context, id uuid.UUID) error {
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return err
	}
	log.Debugf("task %s (%q) removed", removed.Id, removed.Name)
	s.publish(ctx, event_bus.TaskRemovedEvent, event_bus.TaskRemoved{
		Id:   removed.Id.String(),
		Name: removed.Name,
	})
	return nil
}

// ClearAll empties the store. Subscribers release whatever they derived from the tasks.
func (s *ServiceImpl) ClearAll(ctx context.Context) error {
	n, err := s.repo.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	log.Debugf("%d task(s) cleared", n)
	s.publish(ctx, event_bus.TasksClearedEvent, event_bus.TasksCleared{Count: n})
	return nil
}

func (s *ServiceImpl) ListTasks(ctx context.Context) ([]Task, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Span(ctx context.Context) (time.Time, time.Time, error) {
	return s.repo.Span(ctx)
}

// DefaultDates suggests today and a week from today as the input of the next task.
func (s *ServiceImpl) DefaultDates(ctx context.Context) (jalali.Date, jalali.Date, error) {
	today, err := jalali.FromGregorian(s.clock.Now())
	if err != nil {
		return jalali.Date{}, jalali.Date{}, fmt.Errorf("failed to convert today: %w", err)
	}
	end, err := today.AddDays(DefaultSpanDays)
	if err != nil {
		return jalali.Date{}, jalali.Date{}, err
	}
	return today, end, nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
