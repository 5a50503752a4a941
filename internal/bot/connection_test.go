package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestConnectionFollowsGatewayEvents(t *testing.T) {
	bot := newTestBot(t, &fakeRenderer{})
	if bot.Connected() || !bot.ReadyAt().IsZero() {
		t.Fatalf("expected a bot that never connected")
	}
	if guilds, users := bot.Guilds(); guilds != 0 || users != 0 {
		t.Fatalf("expected no guilds before ready, got %d and %d users", guilds, users)
	}

	state := discordgo.NewState()
	if err := state.GuildAdd(&discordgo.Guild{ID: "g1", MemberCount: 12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := state.GuildAdd(&discordgo.Guild{ID: "g2", MemberCount: 30}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	readyAt := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	bot.connection.ready(state, readyAt)
	if !bot.Connected() || !bot.ReadyAt().Equal(readyAt) {
		t.Errorf("expected a connected bot ready at %s", readyAt)
	}
	if guilds, users := bot.Guilds(); guilds != 2 || users != 42 {
		t.Errorf("expected 2 guilds and 42 users, got %d and %d", guilds, users)
	}

	bot.onDisconnect(nil, &discordgo.Disconnect{})
	if bot.Connected() {
		t.Errorf("expected a disconnected bot")
	}
	bot.onResumed(nil, &discordgo.Resumed{})
	if !bot.Connected() || !bot.ReadyAt().Equal(readyAt) {
		t.Errorf("expected resume to reconnect without a new ready time")
	}
}

func TestCopiesOfBotShareConnection(t *testing.T) {
	bot := newTestBot(t, &fakeRenderer{})
	copied := bot
	bot.connection.ready(discordgo.NewState(), time.Now())
	if !copied.Connected() {
		t.Errorf("expected the copy to see the connection")
	}
}
