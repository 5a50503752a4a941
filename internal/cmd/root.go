package cmd

import (
	"net/http"
	"os"
	"time"

	"teampanel/internal/config"
	"teampanel/internal/faceit"
	"teampanel/internal/panel"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "teampanel",
	Short: "Discord bot posting live FACEIT team status panels",
	Long: `teampanel follows a set of FACEIT teams and posts, for each of them, a
status panel with the members online, the recent matches and a few stats.
The panels are refreshed periodically and can be requested on demand.`,
	Version:      version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./teampanel.yaml or ./config/teampanel.yaml)")
	rootCmd.AddCommand(runCmd, previewCmd)
}

// Load the configuration and set up the global logger accordingly
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	setupLogging(cfg)
	return cfg, nil
}

func setupLogging(cfg config.Config) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
	}
}

func newRenderer(cfg config.Config) *panel.Renderer {
	api := faceit.NewFaceitApi(cfg.FaceitBaseUrl, cfg.FaceitApiKey, &http.Client{Timeout: 10 * time.Second})
	presence := panel.NewRandomPresence(uint64(time.Now().UnixNano()))
	return panel.NewRenderer(&api, presence)
}
