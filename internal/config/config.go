package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = "teampanel"
	envPrefix         = "TEAMPANEL"
)

// A team whose panel the bot renders.
// Panels of teams with a channel are posted there and refreshed periodically
type Team struct {
	Name      string `mapstructure:"team_name"`
	ID        string `mapstructure:"team_id"`
	ChannelID string `mapstructure:"channel_id"`
}

type Config struct {
	DiscordToken    string
	FaceitApiKey    string
	FaceitBaseUrl   string
	RefreshSchedule string
	LogLevel        zerolog.Level
	LogPretty       bool
	Teams           []Team
	Health          HealthConfig
}

// Optional HTTP listener serving /health and /metrics
type HealthConfig struct {
	Enabled      bool
	Address      string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Turn a refresh schedule into one the cron parser accepts.
// Descriptors (@every 30m, @hourly) and 6-field specs with seconds are kept,
// classic 5-field specs get a leading 0 for the seconds
func NormalizeSchedule(schedule string) string {
	schedule = strings.TrimSpace(schedule)
	if strings.HasPrefix(schedule, "@") {
		return schedule
	}
	fields := strings.Fields(schedule)
	if len(fields) == 5 {
		return "0 " + strings.Join(fields, " ")
	}
	return strings.Join(fields, " ")
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("faceit.base_url", "https://open.faceit.com/data/v4")
	v.SetDefault("refresh.schedule", "@every 30m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("health.enabled", false)
	v.SetDefault("health.address", ":3000")
	v.SetDefault("metrics.service_name", "teampanel")
	v.SetDefault("metrics.otlp_endpoint", "")
	v.SetDefault("metrics.otlp_insecure", false)
}

// Load the configuration from the provided file, or from teampanel.yaml
// in the working directory or config/ when path is empty.
// A missing file is fine as long as the environment provides the values
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v.GetString("log.level"))))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log.level %q", v.GetString("log.level"))
	}

	cfg := Config{
		DiscordToken:    strings.TrimSpace(v.GetString("discord.token")),
		FaceitApiKey:    strings.TrimSpace(v.GetString("faceit.api_key")),
		FaceitBaseUrl:   strings.TrimSpace(v.GetString("faceit.base_url")),
		RefreshSchedule: NormalizeSchedule(v.GetString("refresh.schedule")),
		LogLevel:        level,
		LogPretty:       v.GetBool("log.pretty"),
		Health: HealthConfig{
			Enabled:      v.GetBool("health.enabled"),
			Address:      strings.TrimSpace(v.GetString("health.address")),
			ServiceName:  strings.TrimSpace(v.GetString("metrics.service_name")),
			OtlpEndpoint: strings.TrimSpace(v.GetString("metrics.otlp_endpoint")),
			OtlpInsecure: v.GetBool("metrics.otlp_insecure"),
		},
	}
	if err := v.UnmarshalKey("teams", &cfg.Teams); err != nil {
		return Config{}, fmt.Errorf("invalid teams: %w", err)
	}

	if _, err := cron.Parse(cfg.RefreshSchedule); err != nil {
		return Config{}, fmt.Errorf("invalid refresh.schedule %q: %w", cfg.RefreshSchedule, err)
	}
	if cfg.Health.Enabled && cfg.Health.Address == "" {
		return Config{}, fmt.Errorf("health.address must not be empty when health.enabled is set")
	}
	for i := range cfg.Teams {
		team := &cfg.Teams[i]
		team.ID = strings.TrimSpace(team.ID)
		team.Name = strings.TrimSpace(team.Name)
		team.ChannelID = strings.TrimSpace(team.ChannelID)
		if team.ID == "" {
			return Config{}, fmt.Errorf("teams[%d].team_id must not be empty", i)
		}
		if team.Name == "" {
			team.Name = team.ID
		}
	}

	return cfg, nil
}

// Check the values only needed to connect the bot
func (cfg *Config) ValidateBot() error {
	if cfg.DiscordToken == "" {
		return fmt.Errorf("discord.token must not be empty")
	}
	if cfg.FaceitApiKey == "" {
		return fmt.Errorf("faceit.api_key must not be empty")
	}
	if len(cfg.Teams) == 0 {
		return fmt.Errorf("at least one team must be configured")
	}
	return nil
}

// Find a configured team by name (case insensitive) or id
func (cfg *Config) FindTeam(nameOrId string) (Team, bool) {
	return FindTeam(cfg.Teams, nameOrId)
}

func FindTeam(teams []Team, nameOrId string) (Team, bool) {
	nameOrId = strings.TrimSpace(nameOrId)
	for _, team := range teams {
		if strings.EqualFold(team.Name, nameOrId) || team.ID == nameOrId {
			return team, true
		}
	}
	return Team{}, false
}
