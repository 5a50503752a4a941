package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"teampanel/internal/metrics"
)

type fakeBot struct {
	connected bool
	readyAt   time.Time
	guilds    int
	users     int
}

func (bot *fakeBot) Connected() bool {
	return bot.connected
}

func (bot *fakeBot) ReadyAt() time.Time {
	return bot.readyAt
}

func (bot *fakeBot) Guilds() (int, int) {
	return bot.guilds, bot.users
}

var readyAt = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestServer(bot BotStatus, recorder *metrics.Recorder, metricsHandler http.Handler) *Server {
	server := NewServer("127.0.0.1:0", "1.2.3", bot, recorder, metricsHandler)
	server.started = readyAt
	server.now = func() time.Time { return readyAt.Add(90 * time.Second) }
	return server
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, httptest.NewRequest(http.MethodGet, path, nil))
	return response
}

func TestHealthReportsBotState(t *testing.T) {
	bot := &fakeBot{connected: true, readyAt: readyAt, guilds: 2, users: 42}
	response := get(t, newTestServer(bot, nil, nil).Handler(), "/health")

	if response.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.Code)
	}
	if contentType := response.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("unexpected content type %q", contentType)
	}
	var report Report
	if err := json.NewDecoder(response.Body).Decode(&report); err != nil {
		t.Fatalf("could not decode report: %v", err)
	}
	if report.Status != "healthy" || report.Uptime != 90 || report.Version != "1.2.3" {
		t.Errorf("unexpected report %+v", report)
	}
	if report.Timestamp != "2024-03-15T10:01:30Z" {
		t.Errorf("unexpected timestamp %q", report.Timestamp)
	}
	if !report.Bot.Connected || report.Bot.ReadyAt == nil || !report.Bot.ReadyAt.Equal(readyAt) {
		t.Errorf("unexpected bot report %+v", report.Bot)
	}
	if report.Bot.Guilds != 2 || report.Bot.Users != 42 {
		t.Errorf("unexpected guild counts %+v", report.Bot)
	}
	if report.Memory.Sys == 0 {
		t.Errorf("expected memory statistics")
	}
}

func TestHealthBeforeReady(t *testing.T) {
	response := get(t, newTestServer(&fakeBot{}, nil, nil).Handler(), "/health")

	var body map[string]any
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatalf("could not decode report: %v", err)
	}
	bot := body["bot"].(map[string]any)
	if bot["connected"] != false {
		t.Errorf("expected a disconnected bot, got %v", bot["connected"])
	}
	if value, ok := bot["readyAt"]; !ok || value != nil {
		t.Errorf("expected a null readyAt, got %v", value)
	}
}

func TestRootListsEndpoints(t *testing.T) {
	response := get(t, newTestServer(nil, nil, nil).Handler(), "/")

	var info Info
	if err := json.NewDecoder(response.Body).Decode(&info); err != nil {
		t.Fatalf("could not decode info: %v", err)
	}
	if info.Name != "teampanel" || info.Status != "running" || info.Version != "1.2.3" {
		t.Errorf("unexpected info %+v", info)
	}
	if len(info.Endpoints) != 2 || info.Endpoints[0] != "/health" || info.Endpoints[1] != "/metrics" {
		t.Errorf("unexpected endpoints %v", info.Endpoints)
	}
}

func TestMetricsWithoutExporterServesCounters(t *testing.T) {
	recorder := metrics.NewRecorder()
	recorder.RecordRender("team-1", time.Millisecond, false)
	recorder.RecordRender("team-1", time.Millisecond, true)
	recorder.RecordCommand("status")
	bot := &fakeBot{guilds: 3, users: 7}

	response := get(t, newTestServer(bot, recorder, nil).Handler(), "/metrics")

	var counters Counters
	if err := json.NewDecoder(response.Body).Decode(&counters); err != nil {
		t.Fatalf("could not decode counters: %v", err)
	}
	if counters.Uptime != 90 || counters.Guilds != 3 || counters.Users != 7 {
		t.Errorf("unexpected counters %+v", counters)
	}
	if counters.Panels.Renders != 2 || counters.Panels.Fallbacks != 1 || counters.Panels.Commands != 1 {
		t.Errorf("unexpected panel counters %+v", counters.Panels)
	}
	if counters.Goroutines == 0 {
		t.Errorf("expected a goroutine count")
	}
}

func TestMetricsDelegatesToExporter(t *testing.T) {
	exporter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "panel_renders_total 1\n")
	})

	response := get(t, newTestServer(nil, nil, exporter).Handler(), "/metrics")

	if body := response.Body.String(); body != "panel_renders_total 1\n" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestUnknownRoutesAndMethods(t *testing.T) {
	handler := newTestServer(nil, nil, nil).Handler()

	if response := get(t, handler, "/games"); response.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", response.Code)
	}
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, httptest.NewRequest(http.MethodPost, "/health", nil))
	if response.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", response.Code)
	}
}

func TestStartServesUntilShutdown(t *testing.T) {
	server := newTestServer(&fakeBot{connected: true}, nil, nil)
	if err := server.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := server.Start(); err == nil {
		t.Errorf("expected an error when starting twice")
	}

	response, err := http.Get("http://" + server.Addr() + "/health")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", response.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("expected a second shutdown to be a no-op, got %v", err)
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/":         "/",
		"/health":   "/health",
		"/metrics":  "/metrics",
		"/wp-login": "other",
	}
	for path, expected := range cases {
		if got := normalizePath(path); got != expected {
			t.Errorf("%s: expected %q, got %q", path, expected, got)
		}
	}
}
