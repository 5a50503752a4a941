package cmd

import (
	"context"
	"net/http"
	"time"

	"teampanel/internal/bot"
	"teampanel/internal/config"
	"teampanel/internal/health"
	"teampanel/internal/metrics"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// Set at build time with -ldflags "-X teampanel/internal/cmd.version=..."
var version = "dev"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to discord and keep the panels up to date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateBot(); err != nil {
			return err
		}

		recorder, metricsHandler, stopMetrics := setupMetrics(cmd.Context(), cfg.Health)

		renderer := newRenderer(cfg)
		renderer.SetRecorder(recorder)

		log.Info().Int("teams", len(cfg.Teams)).Str("schedule", cfg.RefreshSchedule).Msg("Starting teampanel")
		b, err := bot.NewBot(cfg.DiscordToken, cfg.Teams, renderer, cfg.RefreshSchedule)
		if err != nil {
			return err
		}
		b.SetRecorder(recorder)

		var server *health.Server
		if cfg.Health.Enabled {
			server = health.NewServer(cfg.Health.Address, version, &b, recorder, metricsHandler)
			if err := server.Start(); err != nil {
				return err
			}
		}

		err = b.Run()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if server != nil {
			if err := server.Shutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("Health server shutdown failed")
			}
		}
		if err := stopMetrics(ctx); err != nil {
			log.Warn().Err(err).Msg("Metrics shutdown failed")
		}
		return err
	},
}

// Exported metrics are only built when there is a listener to scrape them.
// A setup failure leaves the bot running with in-memory counters
func setupMetrics(ctx context.Context, cfg config.HealthConfig) (*metrics.Recorder, http.Handler, func(context.Context) error) {
	if ctx == nil {
		ctx = context.Background()
	}
	recorder, handler, shutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Enabled,
		ServiceName:  cfg.ServiceName,
		OtlpEndpoint: cfg.OtlpEndpoint,
		OtlpInsecure: cfg.OtlpInsecure,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Metrics setup failed, continuing without telemetry")
		return metrics.NewRecorder(), nil, func(context.Context) error { return nil }
	}
	return recorder, handler, shutdown
}
