package health

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"teampanel/internal/metrics"

	"github.com/rs/zerolog/log"
)

const name = "teampanel"

type Info struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

type Report struct {
	Status    string    `json:"status"`
	Uptime    int64     `json:"uptime"`
	Timestamp string    `json:"timestamp"`
	Bot       BotReport `json:"bot"`
	Memory    Memory    `json:"memory"`
	Version   string    `json:"version"`
}

type BotReport struct {
	Connected bool       `json:"connected"`
	ReadyAt   *time.Time `json:"readyAt"`
	Guilds    int        `json:"guilds"`
	Users     int        `json:"users"`
}

// Subset of the runtime memory statistics, in bytes
type Memory struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapInuse  uint64 `json:"heapInuse"`
	NumGC      uint32 `json:"numGC"`
}

type Counters struct {
	Uptime     int64            `json:"uptime"`
	Memory     Memory           `json:"memory"`
	Goroutines int              `json:"goroutines"`
	Guilds     int              `json:"guilds"`
	Users      int              `json:"users"`
	Panels     metrics.Snapshot `json:"panels"`
}

func (server *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Info{
		Name:      name,
		Version:   server.version,
		Status:    "running",
		Endpoints: []string{"/health", "/metrics"},
	})
}

func (server *Server) health(w http.ResponseWriter, r *http.Request) {
	report := Report{
		Status:    "healthy",
		Uptime:    server.uptime(),
		Timestamp: server.now().UTC().Format(time.RFC3339),
		Memory:    readMemory(),
		Version:   server.version,
	}
	if server.bot != nil {
		report.Bot.Connected = server.bot.Connected()
		if readyAt := server.bot.ReadyAt(); !readyAt.IsZero() {
			readyAt = readyAt.UTC()
			report.Bot.ReadyAt = &readyAt
		}
		report.Bot.Guilds, report.Bot.Users = server.bot.Guilds()
	}
	writeJSON(w, http.StatusOK, report)
}

func (server *Server) counters(w http.ResponseWriter, r *http.Request) {
	counters := Counters{
		Uptime:     server.uptime(),
		Memory:     readMemory(),
		Goroutines: runtime.NumGoroutine(),
		Panels:     server.recorder.Snapshot(),
	}
	if server.bot != nil {
		counters.Guilds, counters.Users = server.bot.Guilds()
	}
	writeJSON(w, http.StatusOK, counters)
}

func readMemory() Memory {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return Memory{
		Alloc:      stats.Alloc,
		TotalAlloc: stats.TotalAlloc,
		Sys:        stats.Sys,
		HeapInuse:  stats.HeapInuse,
		NumGC:      stats.NumGC,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Could not encode health response")
	}
}
