package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ganttsh/ganttsh/internal/rest"
	"github.com/ganttsh/ganttsh/pkg/axis"
	"github.com/ganttsh/ganttsh/pkg/cursor"
	"github.com/ganttsh/ganttsh/pkg/jalali"
	"github.com/ganttsh/ganttsh/pkg/task"
	log "github.com/sirupsen/logrus"
)

const (
	noChartMessage     = "نموداری برای ذخیره وجود ندارد. لطفا ابتدا نمودار تولید کنید."
	outsidePlotMessage = "نقطه انتخاب شده خارج از محدوده نمودار است"
	notDraggingMessage = "خط تاریخ در حال جابجایی نیست"
)

type TickDTO struct {
	X     float64 `json:"x"`
	Date  string  `json:"date"`
	Label string  `json:"label"`
}

type AnnotationDTO struct {
	X      float64 `json:"x"`
	Text   string  `json:"text"`
	Anchor string  `json:"anchor"`
}

type RectDTO struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

type RowDTO struct {
	TaskId string  `json:"taskId"`
	Name   string  `json:"name"`
	Bar    RectDTO `json:"bar"`
}

type ChartDTO struct {
	Policy        string          `json:"policy"`
	TotalDays     int             `json:"totalDays"`
	ViewStart     string          `json:"viewStart"`
	ViewEnd       string          `json:"viewEnd"`
	LabelRotation float64         `json:"labelRotation"`
	MajorTicks    []TickDTO       `json:"majorTicks"`
	MinorTicks    []TickDTO       `json:"minorTicks"`
	Annotations   []AnnotationDTO `json:"annotations"`
	Width         int             `json:"width"`
	Height        int             `json:"height"`
	PlotArea      RectDTO         `json:"plotArea"`
	Rows          []RowDTO        `json:"rows"`
}

type ProbeDTO struct {
	X     float64 `json:"x"`
	Date  string  `json:"date"`
	Label string  `json:"label"`
}

type MarkerDTO struct {
	State string  `json:"state"`
	X     float64 `json:"x,omitempty"`
	Date  string  `json:"date,omitempty"`
	Label string  `json:"label,omitempty"`
}

// PointerDTO locates a pointer either on the axis (X) or in pixels of the
// chart image (Px, Py). X wins when both are given.
type PointerDTO struct {
	X  *float64 `json:"x,omitempty"`
	Px *float64 `json:"px,omitempty"`
	Py *float64 `json:"py,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating chart")
	figure, err := h.service.Generate(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, FigureToDTO(figure))
}

func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	figure, err := h.service.Current(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, FigureToDTO(figure))
}

// GetSnapshot returns the chart as a PNG image.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	log.Debug("Exporting chart snapshot")
	var buf bytes.Buffer
	if err := h.service.Snapshot(r.Context(), &buf); err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("failed to write snapshot: %v", err)
	}
}

// Probe maps the x query parameter, an axis coordinate, to a date.
func (h *Handler) Probe(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid x (axis coordinate)", err.Error())
		return
	}
	date, label, err := cursor.Locate(axis.Coordinate(x))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Coordinate out of range", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, ProbeDTO{X: x, Date: date.Format("2006-01-02"), Label: label})
}

func (h *Handler) GetMarker(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Marker(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, MarkerToDTO(snap))
}

func (h *Handler) PressMarker(w http.ResponseWriter, r *http.Request) {
	x, ok := h.readPointer(w, r)
	if !ok {
		return
	}
	log.Debugf("Marker pressed at %.3f", float64(x))
	snap, err := h.service.PressMarker(r.Context(), x)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, MarkerToDTO(snap))
}

func (h *Handler) DragMarker(w http.ResponseWriter, r *http.Request) {
	x, ok := h.readPointer(w, r)
	if !ok {
		return
	}
	snap, err := h.service.DragMarker(r.Context(), x)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, MarkerToDTO(snap))
}

func (h *Handler) ReleaseMarker(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.ReleaseMarker(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, MarkerToDTO(snap))
}

// readPointer decodes a PointerDTO into an axis coordinate. It writes the
// error response itself and reports false on failure.
func (h *Handler) readPointer(w http.ResponseWriter, r *http.Request) (axis.Coordinate, bool) {
	var pointer PointerDTO
	if err := json.NewDecoder(r.Body).Decode(&pointer); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return 0, false
	}
	if pointer.X != nil {
		return axis.Coordinate(*pointer.X), true
	}
	if pointer.Px == nil || pointer.Py == nil {
		rest.WriteError(w, http.StatusBadRequest, "Missing pointer position", "either x or both px and py are required")
		return 0, false
	}

	figure, err := h.service.Current(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return 0, false
	}
	x, inside := figure.PixelToAxis(*pointer.Px, *pointer.Py)
	if !inside {
		writeServiceError(w, ErrOutsidePlot)
		return 0, false
	}
	return x, true
}

func FigureToDTO(f *Figure) ChartDTO {
	dto := ChartDTO{
		Policy:        f.Plan.Policy.String(),
		TotalDays:     f.Plan.TotalDays,
		ViewStart:     jalaliString(f.Plan.ViewStart),
		ViewEnd:       jalaliString(f.Plan.ViewEnd),
		LabelRotation: f.Plan.LabelRotation,
		MajorTicks:    ticksToDTO(f.Plan.Major),
		MinorTicks:    ticksToDTO(f.Plan.Minor),
		Annotations:   make([]AnnotationDTO, 0, len(f.Plan.Annotations)),
		Width:         f.Width,
		Height:        f.Height,
		PlotArea:      rectToDTO(f.Area),
		Rows:          make([]RowDTO, 0, len(f.Rows)),
	}
	for _, a := range f.Plan.Annotations {
		anchor := "left"
		if a.Anchor == axis.AnchorRight {
			anchor = "right"
		}
		dto.Annotations = append(dto.Annotations, AnnotationDTO{X: float64(a.Coordinate), Text: a.Text, Anchor: anchor})
	}
	for _, row := range f.Rows {
		dto.Rows = append(dto.Rows, RowDTO{
			TaskId: row.TaskId.String(),
			Name:   row.Name,
			Bar:    RectDTO{Left: row.Left, Top: row.Top, Right: row.Right, Bottom: row.Bottom},
		})
	}
	return dto
}

func MarkerToDTO(s cursor.Snapshot) MarkerDTO {
	dto := MarkerDTO{State: s.State.String()}
	if s.State != cursor.Idle {
		dto.X = float64(s.Position.X)
		dto.Date = s.Position.Date.Format("2006-01-02")
		dto.Label = s.Position.Label
	}
	return dto
}

func ticksToDTO(ticks []axis.Tick) []TickDTO {
	out := make([]TickDTO, 0, len(ticks))
	for _, t := range ticks {
		out = append(out, TickDTO{X: float64(t.Coordinate), Date: jalaliString(t.Time), Label: t.Label})
	}
	return out
}

func rectToDTO(r Rect) RectDTO {
	return RectDTO{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

func jalaliString(t time.Time) string {
	d, err := jalali.FromGregorian(t)
	if err != nil {
		return ""
	}
	return d.String()
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, task.ErrEmptyStore):
		rest.WriteError(w, http.StatusConflict, task.UserMessage(err), err.Error())
	case errors.Is(err, ErrNoChart):
		rest.WriteError(w, http.StatusNotFound, noChartMessage, err.Error())
	case errors.Is(err, ErrOutsidePlot):
		rest.WriteError(w, http.StatusBadRequest, outsidePlotMessage, err.Error())
	case errors.Is(err, cursor.ErrNotDragging):
		rest.WriteError(w, http.StatusConflict, notDraggingMessage, err.Error())
	default:
		log.Errorf("chart request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "خطا در تولید نمودار", err.Error())
	}
}
