package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"teampanel/internal/panel"

	"github.com/bwmarrin/discordgo"
)

type fakeRenderer struct {
	mutex    sync.Mutex
	rendered []panel.TeamConfig
}

func (renderer *fakeRenderer) Render(ctx context.Context, team panel.TeamConfig) panel.Panel {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	renderer.rendered = append(renderer.rendered, team)
	return panel.Panel{
		Title:     fmt.Sprintf("🟢 %s - Live Status", team.Name),
		Accent:    panel.ACCENT_LIVE,
		Timestamp: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Footer:    team.ID,
	}
}

type sentMessage struct {
	channelId string
	messageId string
	content   string
	embed     *discordgo.MessageEmbed
	edit      bool
}

type fakeMessenger struct {
	mutex   sync.Mutex
	sent    []sentMessage
	nextId  int
	sendErr error
	editErr error
	// time taken to post a new message
	delay time.Duration
}

func (messenger *fakeMessenger) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return messenger.record(sentMessage{channelId: channelID, content: content}, messenger.sendErr)
}

func (messenger *fakeMessenger) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	time.Sleep(messenger.delay)
	return messenger.record(sentMessage{channelId: channelID, embed: embed}, messenger.sendErr)
}

func (messenger *fakeMessenger) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return messenger.record(sentMessage{channelId: channelID, messageId: messageID, embed: embed, edit: true}, messenger.editErr)
}

func (messenger *fakeMessenger) record(message sentMessage, err error) (*discordgo.Message, error) {
	messenger.mutex.Lock()
	defer messenger.mutex.Unlock()
	if err != nil {
		return nil, err
	}
	if !message.edit {
		messenger.nextId++
		message.messageId = fmt.Sprintf("message-%d", messenger.nextId)
	}
	messenger.sent = append(messenger.sent, message)
	return &discordgo.Message{ID: message.messageId, ChannelID: message.channelId}, nil
}

var errDiscord = errors.New("discord unavailable")
