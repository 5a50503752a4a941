package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"teampanel/internal/config"
	"teampanel/internal/metrics"
	"teampanel/internal/panel"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Bot struct {
	token           string
	teams           []config.Team
	renderer        PanelRenderer
	refreshSchedule string
	refresher       *Refresher
	recorder        *metrics.Recorder
	connection      *connection
}

func NewBot(token string, teams []config.Team, renderer PanelRenderer, refreshSchedule string) (Bot, error) {

	if token == "" {
		return Bot{}, fmt.Errorf("no discord token provided")
	}
	if renderer == nil {
		return Bot{}, fmt.Errorf("no panel renderer provided")
	}

	return Bot{
		token:           token,
		teams:           teams,
		renderer:        renderer,
		refreshSchedule: refreshSchedule,
		connection:      &connection{},
	}, nil
}

// Count commands and refreshes on the provided recorder
func (bot *Bot) SetRecorder(recorder *metrics.Recorder) {
	bot.recorder = recorder
}

func (bot *Bot) Run() error {
	// Create session
	discord, err := discordgo.New("Bot " + bot.token)
	if err != nil {
		return fmt.Errorf("could not create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	// Panels are refreshed through the same session
	bot.refresher = NewRefresher(bot.renderer, discord, bot.teams)
	bot.refresher.recorder = bot.recorder

	// Event handlers
	discord.AddHandler(bot.Receive)
	discord.AddHandler(bot.onReady)
	discord.AddHandler(bot.onResumed)
	discord.AddHandler(bot.onDisconnect)

	// Open session
	if err := discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer discord.Close()

	// Post the panels now, then keep them up to date
	bot.refresher.RefreshAll(context.Background())
	if err := bot.refresher.Start(bot.refreshSchedule); err != nil {
		return err
	}
	defer bot.refresher.Stop()

	// keep bot running until there is an os interruption (ctrl + C)
	log.Info().Msg("Bot running")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Info().Msg("Shutting down")

	return nil
}

func (bot *Bot) Receive(discord *discordgo.Session, message *discordgo.MessageCreate) {

	// Reject my own messages
	if message.Author == nil || message.Author.ID == discord.State.User.ID {
		return
	}

	// Ignore messages from private channels
	if message.GuildID == "" {
		log.Debug().Msg("Ignoring private message")
		return
	}

	responses := bot.Respond(context.Background(), message.Content)
	bot.sendResponses(discord, message.ChannelID, responses)
}

// Parse the input provided and call the appropriate function
func (bot *Bot) Respond(ctx context.Context, content string) []Response {

	parseResult := Parse(content)
	switch parseResult.parseid {
	case PARSEID_NO_BOT_PREFIX:
		return nil
	case PARSEID_OK:
		log.Info().Msg(fmt.Sprintf("Command understood: %s", content))
		bot.recorder.RecordCommand(commandNames[parseResult.command])
		switch parseResult.command {
		case COMMAND_STATUS:
			return bot.status(ctx, parseResult.arguments)
		case COMMAND_TEAMS:
			return bot.listTeams()
		case COMMAND_REFRESH:
			return bot.refresh(ctx)
		case COMMAND_HELP:
			return HelpMessage()
		default:
			panic(fmt.Sprintf("Command %d is not one of the possible ones", parseResult.command))
		}
	default:
		// The command is invalid input, so it contains an error message
		log.Info().Msg(fmt.Sprintf("Wrong input: '%s'. Reason: %s", content, parseResult.errorMessage))
		return InputNotValid(parseResult.errorMessage)
	}
}

func (bot *Bot) sendResponses(discord Messenger, channelId string, responses []Response) {
	for _, response := range responses {
		if err := response.Send(channelId, discord); err != nil {
			log.Error().Err(err).Str("channel_id", channelId).Msg("Could not send response")
		}
	}
}

func (bot *Bot) status(ctx context.Context, teamName string) []Response {

	teams := bot.teams
	if teamName != "" {
		team, ok := config.FindTeam(bot.teams, teamName)
		if !ok {
			log.Info().Msg(fmt.Sprintf("Team %s is not being followed", teamName))
			return TeamNotFound(teamName)
		}
		teams = []config.Team{team}
	}
	if len(teams) == 0 {
		return NoTeams()
	}

	responses := make([]Response, 0, len(teams))
	for _, team := range teams {
		p := bot.renderer.Render(ctx, panel.TeamConfig{Name: team.Name, ID: team.ID})
		responses = append(responses, PanelMessage(p))
	}
	return responses
}

func (bot *Bot) listTeams() []Response {
	if len(bot.teams) == 0 {
		return NoTeams()
	}
	return TeamsMessage(bot.teams)
}

func (bot *Bot) refresh(ctx context.Context) []Response {
	if bot.refresher == nil || bot.refresher.Teams() == 0 {
		return RefreshNotRunning()
	}
	refreshed := bot.refresher.RefreshAll(ctx)
	return PanelsRefreshed(refreshed, bot.refresher.Teams())
}
