package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected no-op shutdown, got %v", err)
	}
}

func TestSetupEnabledExportsRenderCounters(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "teampanel-test",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer shutdown(context.Background())
	if handler == nil {
		t.Fatalf("expected handler when enabled")
	}

	rec.RecordRender("team-1", time.Millisecond, false)
	rec.RecordRender("team-1", time.Millisecond, true)
	rec.RecordCommand("status")
	rec.RecordRefresh("team-1", nil)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if snap := rec.Snapshot(); snap.Renders != 2 || snap.Fallbacks != 1 {
		t.Fatalf("expected in-memory counts to be kept, got %+v", snap)
	}

	response := httptest.NewRecorder()
	handler.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if response.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.Code)
	}
	body, _ := io.ReadAll(response.Body)
	for _, name := range []string{"panel_renders_total", "commands_total", "panel_refreshes_total"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("expected %s in exposition, got:\n%s", name, body)
		}
	}
	if !strings.Contains(string(body), `outcome="fallback"`) {
		t.Errorf("expected a fallback series in exposition")
	}
}
