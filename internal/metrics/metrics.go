package metrics

import (
	"sync"
	"time"
)

type counts struct {
	renders           int
	fallbacks         int
	commands          int
	refreshes         int
	refreshErrors     int
	lastRenderLatency time.Duration
}

// Recorder keeps in-memory counters about panels and commands, and forwards
// them to OpenTelemetry instruments when telemetry is enabled.
// A nil Recorder is valid and records nothing
type Recorder struct {
	mu     sync.Mutex
	counts counts
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{otel: otel}
}

// RecordRender counts one panel render of a team. A fallback render is
// counted both as a render and as a fallback
func (r *Recorder) RecordRender(teamId string, duration time.Duration, fallback bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.counts.renders++
	r.counts.lastRenderLatency = duration
	if fallback {
		r.counts.fallbacks++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRender(teamId, duration, fallback)
	}
}

// RecordCommand counts one command received from a chat user
func (r *Recorder) RecordCommand(command string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.counts.commands++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCommand(command)
	}
}

// RecordRefresh counts one scheduled update of a posted panel
func (r *Recorder) RecordRefresh(teamId string, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.counts.refreshes++
	if err != nil {
		r.counts.refreshErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRefresh(teamId, err)
	}
}

// RecordHTTPRequest tracks requests served by the health listener
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the counters of a Recorder
type Snapshot struct {
	Renders           int           `json:"renders"`
	Fallbacks         int           `json:"fallbacks"`
	Commands          int           `json:"commands"`
	Refreshes         int           `json:"refreshes"`
	RefreshErrors     int           `json:"refreshErrors"`
	LastRenderLatency time.Duration `json:"lastRenderLatencyNs"`
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Renders:           r.counts.renders,
		Fallbacks:         r.counts.fallbacks,
		Commands:          r.counts.commands,
		Refreshes:         r.counts.refreshes,
		RefreshErrors:     r.counts.refreshErrors,
		LastRenderLatency: r.counts.lastRenderLatency,
	}
}
