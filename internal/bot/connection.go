package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// State of the gateway connection, as reported by the health endpoint
type connection struct {
	mutex     sync.RWMutex
	connected bool
	readyAt   time.Time
	state     *discordgo.State
}

func (conn *connection) ready(state *discordgo.State, at time.Time) {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.connected = true
	conn.readyAt = at
	conn.state = state
}

func (conn *connection) resumed() {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.connected = true
}

func (conn *connection) disconnected() {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.connected = false
}

func (bot *Bot) onReady(discord *discordgo.Session, ready *discordgo.Ready) {
	log.Info().Str("session_id", ready.SessionID).Int("guilds", len(ready.Guilds)).Msg("Connected to discord")
	bot.connection.ready(discord.State, time.Now())
}

func (bot *Bot) onResumed(discord *discordgo.Session, resumed *discordgo.Resumed) {
	log.Info().Msg("Discord session resumed")
	bot.connection.resumed()
}

func (bot *Bot) onDisconnect(discord *discordgo.Session, disconnect *discordgo.Disconnect) {
	log.Warn().Msg("Disconnected from discord")
	bot.connection.disconnected()
}

// Whether the gateway connection is currently up
func (bot *Bot) Connected() bool {
	bot.connection.mutex.RLock()
	defer bot.connection.mutex.RUnlock()
	return bot.connection.connected
}

// Time of the last Ready event, zero before the first one
func (bot *Bot) ReadyAt() time.Time {
	bot.connection.mutex.RLock()
	defer bot.connection.mutex.RUnlock()
	return bot.connection.readyAt
}

// Number of guilds the bot is in and the sum of their member counts
func (bot *Bot) Guilds() (guilds int, users int) {
	bot.connection.mutex.RLock()
	state := bot.connection.state
	bot.connection.mutex.RUnlock()
	if state == nil {
		return 0, 0
	}

	state.RLock()
	defer state.RUnlock()
	for _, guild := range state.Guilds {
		users += guild.MemberCount
	}
	return len(state.Guilds), users
}
