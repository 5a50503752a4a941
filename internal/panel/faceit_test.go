package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"teampanel/internal/faceit"
)

// Render against a FACEIT server sending start times in every shape
func TestRenderWithUnreadableStartTimes(t *testing.T) {
	startTimes := []string{`1710496800.5`, `{"x": 1}`, `true`}

	for _, startedAt := range startTimes {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/matches") {
				w.Write([]byte(`{"items": [{"match_id": "m1", "status": "FINISHED", "started_at": ` + startedAt + `, "competition_name": "ESL"}]}`))
				return
			}
			w.Write([]byte(`{"team_id": "team-1", "name": "Falcons", "members": [{"nickname": "alpha"}]}`))
		}))
		api := faceit.NewFaceitApi(server.URL, "key", server.Client())
		renderer := NewRenderer(&api, &fakePresence{})
		renderer.now = func() time.Time { return fixedNow }

		panel := renderer.Render(context.Background(), falcons)
		server.Close()

		if panel.Title == FALLBACK_TITLE || len(panel.Sections) != 4 {
			t.Errorf("%s: expected the full panel, got %q with %d sections", startedAt, panel.Title, len(panel.Sections))
			continue
		}
		expected := "✅ ESL • Recent\n"
		if startedAt == `1710496800.5` {
			expected = "✅ ESL • 03/15\n"
		}
		if panel.Sections[1].Body != expected {
			t.Errorf("%s: unexpected activity body %q", startedAt, panel.Sections[1].Body)
		}
	}
}
