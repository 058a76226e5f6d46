package task

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ganttsh/ganttsh/internal/rest"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TaskDTO struct {
	Id       string   `json:"id"`
	Name     string   `json:"name"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Duration int      `json:"duration"`
	Color    ColorDTO `json:"color"`
}

type DraftDTO struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
	Color string `json:"color"`
}

type ColorDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

type DefaultsDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Color string `json:"color"`
}

type Handler struct {
	service  Service
	renderer ListRenderer
}

func NewHandler(service Service, renderer ListRenderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// ListTasks returns the tasks in insertion order, as CSV when the client accepts text/csv.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing tasks")
	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderTasks(tasks)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv: %v", err)
		}
		return
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dto, err := TaskToDTO(t)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		dtos = append(dtos, dto)
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding task")
	var draft DraftDTO
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	added, err := h.service.AddTask(r.Context(), Draft{
		Name:  draft.Name,
		Start: draft.Start,
		End:   draft.End,
		Color: draft.Color,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dto, err := TaskToDTO(added)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, dto)
}

func (h *Handler) RemoveTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["taskId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid task id", err.Error())
		return
	}
	log.Debugf("Removing task %s", id)

	if err := h.service.RemoveTask(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearTasks(w http.ResponseWriter, r *http.Request) {
	log.Debug("Clearing all tasks")
	if err := h.service.ClearAll(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDefaults returns the prefilled values of the add-task form.
func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.service.DefaultDates(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, DefaultsDTO{
		Start: start.String(),
		End:   end.String(),
		Color: DefaultColor.Key,
	})
}

func (h *Handler) ListColors(w http.ResponseWriter, r *http.Request) {
	colors := Palette()
	dtos := make([]ColorDTO, 0, len(colors))
	for _, c := range colors {
		dtos = append(dtos, ColorToDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func TaskToDTO(t Task) (TaskDTO, error) {
	start, err := t.JalaliStart()
	if err != nil {
		return TaskDTO{}, err
	}
	end, err := t.JalaliEnd()
	if err != nil {
		return TaskDTO{}, err
	}
	return TaskDTO{
		Id:       t.Id.String(),
		Name:     t.Name,
		Start:    start.String(),
		End:      end.String(),
		Duration: t.Duration,
		Color:    ColorToDTO(t.Color),
	}, nil
}

func ColorToDTO(c Color) ColorDTO {
	return ColorDTO{Key: c.Key, Label: c.Label, Hex: c.Hex}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, UserMessage(err), err.Error())
	case errors.Is(err, ErrTaskNotFound):
		rest.WriteError(w, http.StatusNotFound, UserMessage(err), err.Error())
	case errors.Is(err, ErrEmptyStore):
		rest.WriteError(w, http.StatusConflict, UserMessage(err), err.Error())
	default:
		log.Errorf("task request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, UserMessage(err), err.Error())
	}
}
