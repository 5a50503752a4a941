package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"teampanel/internal/metrics"

	"github.com/rs/zerolog/log"
)

const readHeaderTimeout = 5 * time.Second

// What the health endpoint reports about the discord side
type BotStatus interface {
	Connected() bool
	ReadyAt() time.Time
	Guilds() (guilds int, users int)
}

// HTTP listener serving the state of the bot to probes and scrapers
type Server struct {
	address  string
	version  string
	bot      BotStatus
	recorder *metrics.Recorder
	metrics  http.Handler
	started  time.Time
	now      func() time.Time

	mutex    sync.Mutex
	server   *http.Server
	listener net.Listener
}

// Build a health server listening on address once started.
// A nil metrics handler makes /metrics answer with the in-memory counters as JSON
func NewServer(address, version string, bot BotStatus, recorder *metrics.Recorder, metricsHandler http.Handler) *Server {
	return &Server{
		address:  address,
		version:  version,
		bot:      bot,
		recorder: recorder,
		metrics:  metricsHandler,
		started:  time.Now(),
		now:      time.Now,
	}
}

// Routes of the server, wrapped with request logging
func (server *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.root)
	mux.HandleFunc("GET /health", server.health)
	if server.metrics != nil {
		mux.Handle("GET /metrics", server.metrics)
	} else {
		mux.HandleFunc("GET /metrics", server.counters)
	}
	return logRequests(server.recorder, mux)
}

// Bind the address and serve in the background until Shutdown
func (server *Server) Start() error {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	if server.server != nil {
		return fmt.Errorf("health server already started")
	}

	listener, err := net.Listen("tcp", server.address)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", server.address, err)
	}
	server.listener = listener
	server.server = &http.Server{
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	srv := server.server
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Health server failed")
		}
	}()
	log.Info().Str("address", listener.Addr().String()).Msg("Health server listening")
	return nil
}

// Address the server is bound to, or the configured one before Start
func (server *Server) Addr() string {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	if server.listener != nil {
		return server.listener.Addr().String()
	}
	return server.address
}

func (server *Server) Shutdown(ctx context.Context) error {
	server.mutex.Lock()
	srv := server.server
	server.server = nil
	server.listener = nil
	server.mutex.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not stop health server: %w", err)
	}
	log.Info().Msg("Health server stopped")
	return nil
}

func (server *Server) uptime() int64 {
	return int64(server.now().Sub(server.started) / time.Second)
}
