package app

import (
	"fmt"

	"github.com/ganttsh/ganttsh/internal/config"
	"github.com/ganttsh/ganttsh/internal/event_bus"
	"github.com/ganttsh/ganttsh/internal/utils"
	"github.com/ganttsh/ganttsh/pkg/axis"
	"github.com/ganttsh/ganttsh/pkg/chart"
	"github.com/ganttsh/ganttsh/pkg/task"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	TaskStore       *task.Store
	TaskService     *task.ServiceImpl
	CsvTaskRenderer *task.CsvTaskRendererImpl
	TaskHandler     *task.Handler

	AxisPlanner   *axis.Planner
	ChartRenderer *chart.Renderer
	ChartService  *chart.ServiceImpl
	ChartHandler  *chart.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	weekAnchor, err := cfg.Chart.Weekday()
	if err != nil {
		return nil, err
	}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{Location: location}

	deps.TaskStore = task.NewStore()
	deps.TaskService = task.NewService(deps.TaskStore, deps.EventBus, deps.Clock)
	deps.CsvTaskRenderer = task.NewCsvTaskRenderer()
	deps.TaskHandler = task.NewHandler(deps.TaskService, deps.CsvTaskRenderer)

	deps.AxisPlanner = axis.NewPlanner(weekAnchor)
	deps.ChartRenderer, err = chart.NewRenderer(chart.Options{
		WidthInches:     cfg.Chart.WidthInches,
		RowHeightInches: cfg.Chart.RowHeightInches,
		MinHeightInches: cfg.Chart.MinHeightInches,
		DPI:             cfg.Chart.DPI,
		FontPath:        cfg.Chart.FontPath,
		FontSize:        cfg.Chart.FontSize,
		TitleFontSize:   cfg.Chart.TitleFontSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up chart renderer: %w", err)
	}
	deps.ChartService = chart.NewService(deps.TaskService, deps.AxisPlanner, deps.ChartRenderer, deps.EventBus)
	deps.ChartHandler = chart.NewHandler(deps.ChartService)

	return deps, nil
}
