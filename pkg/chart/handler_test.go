package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ganttsh/ganttsh/internal/rest"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (testEnv, *mux.Router) {
	t.Helper()
	env := setupServiceTest(t)
	handler := NewHandler(env.chart)

	r := mux.NewRouter()
	r.HandleFunc("/api/chart", handler.Generate).Methods("POST")
	r.HandleFunc("/api/chart", handler.GetCurrent).Methods("GET")
	r.HandleFunc("/api/chart/snapshot", handler.GetSnapshot).Methods("GET")
	r.HandleFunc("/api/chart/marker", handler.GetMarker).Methods("GET")
	r.HandleFunc("/api/chart/marker/press", handler.PressMarker).Methods("POST")
	r.HandleFunc("/api/chart/marker/drag", handler.DragMarker).Methods("POST")
	r.HandleFunc("/api/chart/marker/release", handler.ReleaseMarker).Methods("POST")
	r.HandleFunc("/api/cursor", handler.Probe).Methods("GET")
	return env, r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) rest.ErrorResponse {
	t.Helper()
	var errResponse rest.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	return errResponse
}

func TestHandler_Generate(t *testing.T) {
	t.Run("should explain that there is nothing to draw", func(t *testing.T) {
		_, r := setupHandlerTest(t)

		w := serve(r, http.MethodPost, "/api/chart", "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, decodeError(t, w).Error, "تسکی برای نمایش وجود ندارد")
	})

	t.Run("should return the plan of the new chart", func(t *testing.T) {
		// given
		env, r := setupHandlerTest(t)
		added := env.addTask(t, "Design", "1403-01-01", "1403-01-07")

		// when
		w := serve(r, http.MethodPost, "/api/chart", "")

		// then
		assert.Equal(t, http.StatusCreated, w.Code)
		var dto ChartDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, "daily", dto.Policy)
		assert.Equal(t, 7, dto.TotalDays)
		assert.Equal(t, "1403-01-01", dto.ViewStart)
		assert.Equal(t, "1403-01-08", dto.ViewEnd)
		assert.Len(t, dto.MajorTicks, 7)
		assert.Equal(t, "1403-01-01", dto.MajorTicks[0].Date)
		assert.Equal(t, "چهارشنبه", dto.MajorTicks[0].Label)
		require.Len(t, dto.Annotations, 2)
		assert.Equal(t, "right", dto.Annotations[1].Anchor)
		require.Len(t, dto.Rows, 1)
		assert.Equal(t, added.Id.String(), dto.Rows[0].TaskId)
		assert.Equal(t, 1200, dto.Width)
	})
}

func TestHandler_GetCurrent(t *testing.T) {
	env, r := setupHandlerTest(t)

	w := serve(r, http.MethodGet, "/api/chart", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "نموداری")

	env.addTask(t, "A", "1403-01-01", "1403-02-01")
	require.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/chart", "").Code)

	w = serve(r, http.MethodGet, "/api/chart", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var dto ChartDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, "weekly_in_month", dto.Policy)
	assert.NotEmpty(t, dto.MinorTicks)
}

func TestHandler_GetSnapshot(t *testing.T) {
	t.Run("should fail without a chart", func(t *testing.T) {
		_, r := setupHandlerTest(t)

		w := serve(r, http.MethodGet, "/api/chart/snapshot", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should return a png", func(t *testing.T) {
		env, r := setupHandlerTest(t)
		env.addTask(t, "A", "1403-01-01", "1403-01-07")
		serve(r, http.MethodPost, "/api/chart", "")

		w := serve(r, http.MethodGet, "/api/chart/snapshot", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))
	})
}

func TestHandler_Probe(t *testing.T) {
	_, r := setupHandlerTest(t)

	w := serve(r, http.MethodGet, "/api/cursor?x=19802.75", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var dto ProbeDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, ProbeDTO{X: 19802.75, Date: "2024-03-20", Label: "1403-01-01"}, dto)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/api/cursor?x=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/api/cursor", "").Code)
}

func TestHandler_Marker(t *testing.T) {
	t.Run("should need a chart", func(t *testing.T) {
		_, r := setupHandlerTest(t)

		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/chart/marker", "").Code)
		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodPost, "/api/chart/marker/press", `{"x": 19802}`).Code)
	})

	t.Run("should follow pointer events given in pixels", func(t *testing.T) {
		// given
		env, r := setupHandlerTest(t)
		env.addTask(t, "A", "1403-01-01", "1403-01-07")
		serve(r, http.MethodPost, "/api/chart", "")
		figure, err := env.chart.Current(context.Background())
		require.NoError(t, err)
		midY := (figure.Area.Top + figure.Area.Bottom) / 2
		x := figure.AxisToPixel(figure.vmin + 2.5)

		// when
		w := serve(r, http.MethodPost, "/api/chart/marker/press", fmt.Sprintf(`{"px": %f, "py": %f}`, x, midY))

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		var marker MarkerDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&marker))
		assert.Equal(t, "dragging", marker.State)
		assert.Equal(t, "1403-01-03", marker.Label)

		// when
		w = serve(r, http.MethodPost, "/api/chart/marker/drag", fmt.Sprintf(`{"x": %f}`, float64(figure.vmin)+5.1))

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&marker))
		assert.Equal(t, "1403-01-06", marker.Label)

		// when
		w = serve(r, http.MethodPost, "/api/chart/marker/release", "")

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&marker))
		assert.Equal(t, "placed", marker.State)

		w = serve(r, http.MethodGet, "/api/chart/marker", "")
		require.NoError(t, json.NewDecoder(w.Body).Decode(&marker))
		assert.Equal(t, MarkerDTO{State: "placed", X: float64(figure.vmin) + 5.1, Date: "2024-03-25", Label: "1403-01-06"}, marker)
	})

	t.Run("should reject pointers outside the plot", func(t *testing.T) {
		env, r := setupHandlerTest(t)
		env.addTask(t, "A", "1403-01-01", "1403-01-07")
		serve(r, http.MethodPost, "/api/chart", "")

		w := serve(r, http.MethodPost, "/api/chart/marker/press", `{"px": 1, "py": 1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject a body without a position", func(t *testing.T) {
		env, r := setupHandlerTest(t)
		env.addTask(t, "A", "1403-01-01", "1403-01-07")
		serve(r, http.MethodPost, "/api/chart", "")

		assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/chart/marker/press", `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/chart/marker/press", `{`).Code)
	})

	t.Run("should refuse to drag a released marker", func(t *testing.T) {
		env, r := setupHandlerTest(t)
		env.addTask(t, "A", "1403-01-01", "1403-01-07")
		serve(r, http.MethodPost, "/api/chart", "")
		figure, _ := env.chart.Current(context.Background())
		serve(r, http.MethodPost, "/api/chart/marker/press", fmt.Sprintf(`{"x": %f}`, float64(figure.vmin)+1))
		serve(r, http.MethodPost, "/api/chart/marker/release", "")

		w := serve(r, http.MethodPost, "/api/chart/marker/drag", fmt.Sprintf(`{"x": %f}`, float64(figure.vmin)+2))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
