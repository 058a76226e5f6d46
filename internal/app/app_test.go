package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganttsh/ganttsh/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Application {
	return config.Application{
		Server:   config.Server{Addr: ":0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second},
		Timezone: "UTC",
		Chart: config.Chart{
			WidthInches:     12,
			RowHeightInches: 0.6,
			MinHeightInches: 4,
			DPI:             50,
			FontSize:        12,
			TitleFontSize:   14,
			WeekAnchor:      "monday",
		},
	}
}

func do(a *Application, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestNewApplication(t *testing.T) {
	t.Run("should reject an unknown week anchor", func(t *testing.T) {
		cfg := testConfig()
		cfg.Chart.WeekAnchor = "someday"

		_, err := newApplication(cfg)

		assert.Error(t, err)
	})

	t.Run("should reject non-positive chart sizes", func(t *testing.T) {
		cfg := testConfig()
		cfg.Chart.DPI = 0

		_, err := newApplication(cfg)

		assert.Error(t, err)
	})

	t.Run("should take the server address from config", func(t *testing.T) {
		a, err := newApplication(testConfig())

		require.NoError(t, err)
		assert.Equal(t, ":0", a.srv.Addr)
	})
}

func TestRoutes(t *testing.T) {
	t.Run("should add a task, draw it and drop the chart on clear", func(t *testing.T) {
		// given
		a, err := newApplication(testConfig())
		require.NoError(t, err)

		// when
		w := do(a, http.MethodPost, "/api/task", `{"name":"طراحی","start":"1403-01-01","end":"1403-01-05","color":"green"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(a, http.MethodPost, "/api/chart", "")
		require.Equal(t, http.StatusCreated, w.Code)

		// then
		w = do(a, http.MethodGet, "/api/chart", "")
		require.Equal(t, http.StatusOK, w.Code)
		var chart struct {
			Policy    string `json:"policy"`
			TotalDays int    `json:"totalDays"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&chart))
		assert.Equal(t, "daily", chart.Policy)
		assert.Equal(t, 5, chart.TotalDays)

		w = do(a, http.MethodDelete, "/api/task", "")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(a, http.MethodGet, "/api/chart", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should answer unknown methods with 405", func(t *testing.T) {
		a, err := newApplication(testConfig())
		require.NoError(t, err)

		w := do(a, http.MethodPut, "/api/chart", "")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("should list colors", func(t *testing.T) {
		a, err := newApplication(testConfig())
		require.NoError(t, err)

		w := do(a, http.MethodGet, "/api/color", "")

		require.Equal(t, http.StatusOK, w.Code)
		var colors []map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&colors))
		assert.Equal(t, "blue", colors[0]["key"])
	})
}
