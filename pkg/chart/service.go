package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ganttsh/ganttsh/internal/event_bus"
	"github.com/ganttsh/ganttsh/pkg/axis"
	"github.com/ganttsh/ganttsh/pkg/cursor"
	"github.com/ganttsh/ganttsh/pkg/task"
	log "github.com/sirupsen/logrus"
)

var ErrNoChart = errors.New("no chart has been generated")
var ErrOutsidePlot = errors.New("point is outside the plot area")

type Service interface {
	// Generate discards the current chart and marker and draws a new chart of
	// all stored tasks. With no tasks stored the current chart is kept.
	Generate(ctx context.Context) (*Figure, error)
	Current(ctx context.Context) (*Figure, error)
	Snapshot(ctx context.Context, w io.Writer) error
	PressMarker(ctx context.Context, x axis.Coordinate) (cursor.Snapshot, error)
	DragMarker(ctx context.Context, x axis.Coordinate) (cursor.Snapshot, error)
	ReleaseMarker(ctx context.Context) (cursor.Snapshot, error)
	Marker(ctx context.Context) (cursor.Snapshot, error)
}

type TaskReader interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	Span(ctx context.Context) (time.Time, time.Time, error)
}

type ServiceImpl struct {
	mu       sync.RWMutex
	tasks    TaskReader
	planner  *axis.Planner
	renderer *Renderer
	eventBus *event_bus.EventBus
	figure   *Figure
	marker   *cursor.Marker
}

func NewService(tasks TaskReader, planner *axis.Planner, renderer *Renderer, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{
		tasks:    tasks,
		planner:  planner,
		renderer: renderer,
		eventBus: eventBus,
		marker:   cursor.NewMarker(),
	}
	if eventBus != nil {
		event_bus.SubscribeTyped[event_bus.TasksCleared](
			eventBus,
			event_bus.TasksClearedEvent,
			func(e event_bus.EventT[event_bus.TasksCleared]) error {
				log.Debugf("received tasks cleared event: %d task(s)", e.Data.Count)
				service.release(e.Context(), "tasks cleared")
				return nil
			},
		)
	}
	return service
}

func (s *ServiceImpl) Generate(ctx context.Context) (*Figure, error) {
	figure, err := s.generate(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("chart generated: %d task(s), %d day(s), %s", len(figure.Rows), figure.Plan.TotalDays, figure.Plan.Policy)
	s.publish(ctx, event_bus.ChartGeneratedEvent, event_bus.ChartGenerated{
		Policy:    figure.Plan.Policy.String(),
		TotalDays: figure.Plan.TotalDays,
		Tasks:     len(figure.Rows),
	})
	return figure, nil
}

func (s *ServiceImpl) generate(ctx context.Context) (*Figure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.tasks.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, task.ErrEmptyStore
	}
	minStart, maxEnd, err := s.tasks.Span(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.Plan(minStart, maxEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to plan axis: %w", err)
	}
	figure, err := s.renderer.Render(tasks, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	// The new chart replaces the old one together with its marker.
	s.marker.Reset()
	s.figure = figure
	return figure, nil
}

func (s *ServiceImpl) Current(ctx context.Context) (*Figure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.figure == nil {
		return nil, ErrNoChart
	}
	return s.figure, nil
}

// Snapshot writes the current chart, marker included, as PNG.
func (s *ServiceImpl) Snapshot(ctx context.Context, w io.Writer) error {
	s.mu.RLock()
	figure := s.figure
	marker := s.marker.Current()
	s.mu.RUnlock()

	if figure == nil {
		return ErrNoChart
	}
	if err := EncodePNG(w, figure.Snapshot(marker)); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

func (s *ServiceImpl) PressMarker(ctx context.Context, x axis.Coordinate) (cursor.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkInView(x); err != nil {
		return cursor.Snapshot{}, err
	}
	return s.marker.Press(x)
}

// DragMarker moves a pressed marker. Points outside the plot are ignored with ErrOutsidePlot.
func (s *ServiceImpl) DragMarker(ctx context.Context, x axis.Coordinate) (cursor.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkInView(x); err != nil {
		return s.marker.Current(), err
	}
	return s.marker.Drag(x)
}

func (s *ServiceImpl) ReleaseMarker(ctx context.Context) (cursor.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.figure == nil {
		return cursor.Snapshot{}, ErrNoChart
	}
	return s.marker.Release(), nil
}

func (s *ServiceImpl) Marker(ctx context.Context) (cursor.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.figure == nil {
		return cursor.Snapshot{}, ErrNoChart
	}
	return s.marker.Current(), nil
}

func (s *ServiceImpl) checkInView(x axis.Coordinate) error {
	if s.figure == nil {
		return ErrNoChart
	}
	if !s.figure.InView(x) {
		return fmt.Errorf("%w: %.3f", ErrOutsidePlot, float64(x))
	}
	return nil
}

// release drops the current chart and marker.
func (s *ServiceImpl) release(ctx context.Context, reason string) {
	s.mu.Lock()
	had := s.figure != nil
	s.figure = nil
	s.marker.Reset()
	s.mu.Unlock()

	if had {
		log.Debugf("chart released: %s", reason)
		s.publish(ctx, event_bus.ChartReleasedEvent, event_bus.ChartReleased{Reason: reason})
	}
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
