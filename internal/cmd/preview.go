package cmd

import (
	"context"
	"fmt"
	"time"

	"teampanel/internal/config"
	"teampanel/internal/panel"
	"teampanel/internal/preview"

	"github.com/spf13/cobra"
)

var (
	previewName    string
	previewWidth   int
	previewTimeout time.Duration
)

var previewCmd = &cobra.Command{
	Use:   "preview <team_id | team_name>",
	Short: "Print the status panel of a team in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// A configured team is found by name or id, anything else is taken as an id
		team := config.Team{ID: args[0], Name: args[0]}
		if found, ok := cfg.FindTeam(args[0]); ok {
			team = found
		}
		if previewName != "" {
			team.Name = previewName
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), previewTimeout)
		defer cancel()
		p := newRenderer(cfg).Render(ctx, panel.TeamConfig{Name: team.Name, ID: team.ID})
		fmt.Fprintln(cmd.OutOrStdout(), preview.Render(p, previewWidth))
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewName, "name", "", "team name shown in the title")
	previewCmd.Flags().IntVar(&previewWidth, "width", preview.DefaultWidth, "width of the panel in columns")
	previewCmd.Flags().DurationVar(&previewTimeout, "timeout", 15*time.Second, "time allowed to fetch the team data")
}
