package bot

import (
	"github.com/bwmarrin/discordgo"
)

// The part of a discord session used to deliver messages
type Messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type ResponseString struct {
	string
}
type ResponseEmbed struct {
	discordgo.MessageEmbed
}

type Response interface {
	Send(channelid string, discord Messenger) error
}

func (response ResponseString) Send(channelid string, discord Messenger) error {
	_, err := discord.ChannelMessageSend(channelid, response.string)
	return err
}

func (response ResponseEmbed) Send(channelid string, discord Messenger) error {
	_, err := discord.ChannelMessageSendEmbed(channelid, &response.MessageEmbed)
	return err
}
