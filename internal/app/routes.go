package app

import (
	"github.com/ganttsh/ganttsh/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Tasks
	r.HandleFunc("/api/task", deps.TaskHandler.ListTasks).Methods("GET")
	r.HandleFunc("/api/task", deps.TaskHandler.AddTask).Methods("POST")
	r.HandleFunc("/api/task", deps.TaskHandler.ClearTasks).Methods("DELETE")
	r.HandleFunc("/api/task/defaults", deps.TaskHandler.GetDefaults).Methods("GET")
	r.HandleFunc("/api/task/{taskId}", deps.TaskHandler.RemoveTask).Methods("DELETE")
	r.HandleFunc("/api/color", deps.TaskHandler.ListColors).Methods("GET")

	// Chart
	r.HandleFunc("/api/chart", deps.ChartHandler.Generate).Methods("POST")
	r.HandleFunc("/api/chart", deps.ChartHandler.GetCurrent).Methods("GET")
	r.HandleFunc("/api/chart/snapshot", deps.ChartHandler.GetSnapshot).Methods("GET")

	// Date marker
	r.HandleFunc("/api/chart/marker", deps.ChartHandler.GetMarker).Methods("GET")
	r.HandleFunc("/api/chart/marker/press", deps.ChartHandler.PressMarker).Methods("POST")
	r.HandleFunc("/api/chart/marker/drag", deps.ChartHandler.DragMarker).Methods("POST")
	r.HandleFunc("/api/chart/marker/release", deps.ChartHandler.ReleaseMarker).Methods("POST")
	r.HandleFunc("/api/cursor", deps.ChartHandler.Probe).Methods("GET")
}
