package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"teampanel/internal/faceit"
	"teampanel/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// The two operations of the statistics API the panel is built from
type StatsApi interface {
	GetTeamById(ctx context.Context, teamId string) (*faceit.Team, error)
	GetTeamMatches(ctx context.Context, teamId string, limit int) (*faceit.MatchPage, error)
}

const (
	MAX_MEMBERS          = 5
	MAX_MATCHES          = 2
	RECENT_MATCHES_LIMIT = 3
)

const (
	DESCRIPTION         = "**Team Activity & Match Tracking**"
	NO_STATUS           = "❌ Could not retrieve team member status"
	NO_MEMBERS_ONLINE   = "⚫ No team members currently online"
	NO_RECENT_MATCHES   = "No recent matches"
	STATS_UNAVAILABLE   = "Stats unavailable"
	HEADING_ACTIVITY    = "📊 Recent Activity"
	HEADING_STATS       = "📈 Quick Stats"
	HEADING_UPCOMING    = "📅 Upcoming"
	SCHEDULE_URL        = "https://www.faceit.com/en/teams/%s"
	FALLBACK_TITLE      = "❌ Status Panel Error"
	FALLBACK_DESCR      = "Could not retrieve team status information"
	FALLBACK_FOOTER     = "Last Updated"
	UNKNOWN_NICKNAME    = "Unknown"
	UNKNOWN_COMPETITION = "Match"
)

type Renderer struct {
	api      StatsApi
	presence PresenceProvider
	now      func() time.Time
	recorder *metrics.Recorder
}

func NewRenderer(api StatsApi, presence PresenceProvider) *Renderer {
	return &Renderer{api: api, presence: presence, now: time.Now}
}

// Count every render, and whether it fell back, on the provided recorder
func (renderer *Renderer) SetRecorder(recorder *metrics.Recorder) {
	renderer.recorder = recorder
}

// Render the status panel of a team.
// Any failure is logged and turned into the fallback panel
func (renderer *Renderer) Render(ctx context.Context, team TeamConfig) Panel {

	logger := log.With().
		Str("render_id", uuid.NewString()).
		Str("team_id", team.ID).
		Logger()
	ctx = logger.WithContext(ctx)

	start := time.Now()
	panel, err := renderer.Build(ctx, team)
	renderer.recorder.RecordRender(team.ID, time.Since(start), err != nil)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating status panel")
		return Fallback(renderer.now())
	}
	logger.Debug().Msg("Status panel created")
	return panel
}

// Build the status panel of a team, or return why it could not be built
func (renderer *Renderer) Build(ctx context.Context, team TeamConfig) (Panel, error) {

	if team.ID == "" {
		return Panel{}, fmt.Errorf("team %q has no id", team.Name)
	}

	// Both requests are independent, so they go out at the same time
	var (
		record              *faceit.Team
		page                *faceit.MatchPage
		teamErr, matchesErr error
		wg                  sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		record, teamErr = renderer.api.GetTeamById(ctx, team.ID)
	}()
	go func() {
		defer wg.Done()
		page, matchesErr = renderer.api.GetTeamMatches(ctx, team.ID, RECENT_MATCHES_LIMIT)
	}()
	wg.Wait()
	if err := errors.Join(teamErr, matchesErr); err != nil {
		return Panel{}, fmt.Errorf("could not fetch data of team %s: %w", team.ID, err)
	}
	zerolog.Ctx(ctx).Debug().Bool("team_found", record != nil).Bool("matches_found", page != nil).Msg("Fetched team data")

	return Panel{
		Title:       fmt.Sprintf("🟢 %s - Live Status", team.Name),
		Description: DESCRIPTION,
		Accent:      ACCENT_LIVE,
		Timestamp:   renderer.now().UTC(),
		Sections: []Section{
			renderer.membersSection(ctx, record),
			matchesSection(page),
			statsSection(record, page),
			upcomingSection(team.ID),
		},
		Footer: fmt.Sprintf("Last Updated • Auto-refresh every 30min • Team ID: %s", team.ID),
	}, nil
}

// Panel shown whenever the real one cannot be built
func Fallback(now time.Time) Panel {
	return Panel{
		Title:       FALLBACK_TITLE,
		Description: FALLBACK_DESCR,
		Accent:      ACCENT_ERROR,
		Timestamp:   now.UTC(),
		Footer:      FALLBACK_FOOTER,
	}
}

func (renderer *Renderer) membersSection(ctx context.Context, record *faceit.Team) Section {

	total := 0
	var body string
	if record == nil {
		body = NO_STATUS
	} else {
		total = len(record.Members)
		members := record.Members[:min(total, MAX_MEMBERS)]

		var builder strings.Builder
		online := 0
		for _, member := range members {
			nickname := member.Nickname
			if nickname == "" {
				nickname = UNKNOWN_NICKNAME
			}
			presence := renderer.presence.Presence(ctx, member)
			if presence.Online {
				online++
				fmt.Fprintf(&builder, "🟢 **%s** • Online %s\n", nickname, FormatOnlineTime(presence.Since))
			} else {
				fmt.Fprintf(&builder, "⚫ %s • Offline\n", nickname)
			}
		}
		body = builder.String()
		if online == 0 {
			body = NO_MEMBERS_ONLINE
		}
	}

	return Section{
		Heading: fmt.Sprintf("👥 Team Members Status (%d total)", total),
		Body:    body,
		Layout:  Wide,
	}
}

func matchesSection(page *faceit.MatchPage) Section {

	body := NO_RECENT_MATCHES
	if page != nil && len(page.Items) > 0 {
		var builder strings.Builder
		for _, match := range page.Items[:min(len(page.Items), MAX_MATCHES)] {
			competition := match.CompetitionName
			if competition == "" {
				competition = UNKNOWN_COMPETITION
			}
			fmt.Fprintf(&builder, "%s %s • %s\n", StatusGlyph(match.Status), ShortCompetition(competition), FormatMatchDate(match.StartedAt))
		}
		body = builder.String()
	}

	return Section{Heading: HEADING_ACTIVITY, Body: body, Layout: Narrow}
}

func statsSection(record *faceit.Team, page *faceit.MatchPage) Section {

	body := STATS_UNAVAILABLE
	if record != nil {
		matches := 0
		if page != nil {
			matches = len(page.Items)
		}
		body = fmt.Sprintf("**Members:** %d\n**Recent Matches:** %d", len(record.Members), matches)
	}

	return Section{Heading: HEADING_STATS, Body: body, Layout: Narrow}
}

func upcomingSection(teamId string) Section {
	return Section{
		Heading: HEADING_UPCOMING,
		Body:    fmt.Sprintf("[View Schedule]("+SCHEDULE_URL+")", teamId),
		Layout:  Wide,
	}
}
