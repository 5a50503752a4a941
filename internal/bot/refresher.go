package bot

import (
	"context"
	"fmt"
	"sync"

	"teampanel/internal/config"
	"teampanel/internal/metrics"
	"teampanel/internal/panel"

	"github.com/robfig/cron"
	"github.com/rs/zerolog/log"
)

type PanelRenderer interface {
	Render(ctx context.Context, team panel.TeamConfig) panel.Panel
}

// Keeps one panel message per team up to date in the channel of the team.
// Only teams with a channel are refreshed
type Refresher struct {
	renderer  PanelRenderer
	messenger Messenger
	teams     []config.Team
	mutex     sync.Mutex
	messages  map[string]string
	cron      *cron.Cron
	recorder  *metrics.Recorder
	// held for a whole refresh, so that a team is never posted twice
	refreshing sync.Mutex
}

func NewRefresher(renderer PanelRenderer, messenger Messenger, teams []config.Team) *Refresher {

	posted := make([]config.Team, 0, len(teams))
	for _, team := range teams {
		if team.ChannelID != "" {
			posted = append(posted, team)
		}
	}
	return &Refresher{
		renderer:  renderer,
		messenger: messenger,
		teams:     posted,
		messages:  map[string]string{},
	}
}

// Number of teams whose panel gets posted
func (refresher *Refresher) Teams() int {
	return len(refresher.teams)
}

// Refresh every panel on the provided cron schedule, until Stop is called
func (refresher *Refresher) Start(schedule string) error {

	refresher.mutex.Lock()
	defer refresher.mutex.Unlock()
	if refresher.cron != nil {
		return fmt.Errorf("refresher already started")
	}

	c := cron.New()
	if err := c.AddFunc(schedule, func() { refresher.RefreshAll(context.Background()) }); err != nil {
		return fmt.Errorf("could not schedule refresh %q: %w", schedule, err)
	}
	c.Start()
	refresher.cron = c
	log.Info().Str("schedule", schedule).Msg(fmt.Sprintf("Refreshing %d panels", len(refresher.teams)))
	return nil
}

func (refresher *Refresher) Stop() {
	refresher.mutex.Lock()
	defer refresher.mutex.Unlock()
	if refresher.cron != nil {
		refresher.cron.Stop()
		refresher.cron = nil
	}
}

// Refresh the panel of every team, returning how many could be delivered
func (refresher *Refresher) RefreshAll(ctx context.Context) int {

	refreshed := 0
	for _, team := range refresher.teams {
		err := refresher.Refresh(ctx, team)
		refresher.recorder.RecordRefresh(team.ID, err)
		if err != nil {
			log.Error().Err(err).Str("team_id", team.ID).Msg("Could not refresh panel")
			continue
		}
		refreshed++
	}
	log.Debug().Msg(fmt.Sprintf("Refreshed %d of %d panels", refreshed, len(refresher.teams)))
	return refreshed
}

// Render the panel of the team and edit the message posted last time.
// A new message is posted when there is none yet or it cannot be edited
func (refresher *Refresher) Refresh(ctx context.Context, team config.Team) error {

	refresher.refreshing.Lock()
	defer refresher.refreshing.Unlock()

	embed := refresher.renderer.Render(ctx, panel.TeamConfig{Name: team.Name, ID: team.ID}).Embed()

	refresher.mutex.Lock()
	messageId, ok := refresher.messages[team.ID]
	refresher.mutex.Unlock()

	if ok {
		_, err := refresher.messenger.ChannelMessageEditEmbed(team.ChannelID, messageId, embed)
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Str("team_id", team.ID).Msg("Could not edit panel message, posting a new one")
	}

	message, err := refresher.messenger.ChannelMessageSendEmbed(team.ChannelID, embed)
	if err != nil {
		return fmt.Errorf("could not post panel of team %s to channel %s: %w", team.ID, team.ChannelID, err)
	}

	refresher.mutex.Lock()
	refresher.messages[team.ID] = message.ID
	refresher.mutex.Unlock()
	return nil
}
