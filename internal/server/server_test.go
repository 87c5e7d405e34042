// Public domain.

package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/natal/chart"
	"github.com/soniakeys/natal/houses"
	"github.com/soniakeys/natal/internal/metrics"
	"github.com/soniakeys/natal/internal/server"
)

var fixed = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newServer(t *testing.T) (*server.Server, *metrics.Collector) {
	t.Helper()
	m, err := metrics.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	e := chart.New(
		chart.WithRecorder(m),
		chart.WithClock(func() time.Time { return fixed }),
	)
	return server.New(server.Config{
		Log:     zerolog.Nop(),
		Engine:  e,
		Metrics: m,
		Version: "test",
	}), m
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chart", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

const parisBody = `{
	"name": "Paris",
	"date": "1990-06-15",
	"time": "14:30",
	"location": {"name": "Paris", "latitude": 48.8566, "longitude": 2.3522, "timezone": "Europe/Paris"}
}`

func TestHealth(t *testing.T) {
	s, _ := newServer(t)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"natal","version":"test"}`, rr.Body.String())
}

func TestSystems(t *testing.T) {
	s, _ := newServer(t)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/systems", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"systems":["placidus","koch","equal","whole-sign"],"default":"placidus"}`,
		rr.Body.String())
}

func TestChart(t *testing.T) {
	s, _ := newServer(t)
	rr := post(t, s.Handler(), parisBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp struct {
		Chart struct {
			Instant     time.Time       `json:"instant"`
			HouseSystem houses.System   `json:"house_system"`
			Positions   []struct{}      `json:"positions"`
			Cusps       []struct{}      `json:"cusps"`
			Aspects     json.RawMessage `json:"aspects"`
			ComputedAt  time.Time       `json:"computed_at"`
		} `json:"chart"`
		Dominance struct {
			Element  string `json:"dominant_element"`
			Activity []struct {
				Body string `json:"body"`
			} `json:"activity"`
		} `json:"dominance"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Chart.Instant.Equal(time.Date(1990, 6, 15, 12, 30, 0, 0, time.UTC)))
	assert.Equal(t, houses.Placidus, resp.Chart.HouseSystem)
	assert.Len(t, resp.Chart.Positions, 14)
	assert.Len(t, resp.Chart.Cusps, 12)
	assert.NotEqual(t, "null", string(resp.Chart.Aspects))
	assert.True(t, resp.Chart.ComputedAt.Equal(fixed))
	assert.NotEmpty(t, resp.Dominance.Element)
	assert.Len(t, resp.Dominance.Activity, 14)
}

func TestChartHouseSystem(t *testing.T) {
	s, _ := newServer(t)
	body := `{"date":"1990-06-15","time":"12:30","house_system":"koch",
		"location":{"latitude":48.8566,"longitude":2.3522}}`
	rr := post(t, s.Handler(), body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"house_system":"koch"`)
}

func TestChartErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{"date":`, http.StatusBadRequest},
		{"unknown system", `{"date":"1990-06-15","time":"12:30","house_system":"topocentric",
			"location":{"latitude":1,"longitude":2}}`, http.StatusBadRequest},
		{"missing location", `{"date":"1990-06-15","time":"12:30"}`, http.StatusBadRequest},
		{"latitude", `{"date":"1990-06-15","time":"12:30","location":{"latitude":95,"longitude":2}}`,
			http.StatusBadRequest},
		{"time", `{"date":"1990-06-15","time":"noon","location":{"latitude":5,"longitude":2}}`,
			http.StatusBadRequest},
	}
	s, _ := newServer(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := post(t, s.Handler(), tc.body)
			assert.Equal(t, tc.code, rr.Code)
			var e map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
			assert.NotEmpty(t, e["error"])
		})
	}
}

func TestChartTimeout(t *testing.T) {
	e := chart.New()
	s := server.New(server.Config{Log: zerolog.Nop(), Engine: e})
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/chart", bytes.NewBufferString(parisBody)).
		WithContext(ctx)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newServer(t)
	post(t, s.Handler(), parisBody)
	post(t, s.Handler(), `{"date":"1990-06-15"}`)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `natal_charts_total{system="placidus"} 1`)
	assert.Contains(t, body, `natal_chart_failures_total{reason="invalid_birth_data"} 1`)
}

func TestNoMetrics(t *testing.T) {
	s := server.New(server.Config{Log: zerolog.Nop()})
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORS(t *testing.T) {
	s := server.New(server.Config{Log: zerolog.Nop(), CORSOrigins: []string{"https://app.example"}})
	req := httptest.NewRequest(http.MethodOptions, "/api/chart", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun(t *testing.T) {
	s := server.New(server.Config{Addr: "127.0.0.1:0", Log: zerolog.Nop()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Second) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
