package bot

import (
	"fmt"
	"strings"

	"teampanel/internal/config"
	"teampanel/internal/panel"

	"github.com/bwmarrin/discordgo"
)

// Use "teal" color for the bot
const color int = 0x008080

func InputNotValid(errorMessage string) []Response {

	return []Response{ResponseString{fmt.Sprintf("Input not valid: \n> %s", errorMessage)}}
}

func HelpMessage() []Response {

	embed := discordgo.MessageEmbed{Title: "Commands available", Color: color}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`teampanel status [team_name]`",
		Value:  "Print the live status panel of a team, or of every team when no name is given",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`teampanel teams`",
		Value:  "Print the teams being followed and the channel their panel is posted to",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`teampanel refresh`",
		Value:  "Refresh the posted panels right now instead of waiting for the next update",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`teampanel help`",
		Value:  "Print the usage of the different commands",
		Inline: false,
	})
	return []Response{ResponseEmbed{embed}}
}

func TeamNotFound(name string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Team `%s` is not being followed", name)}}
}

func NoTeams() []Response {
	return []Response{ResponseString{"No teams are being followed"}}
}

func TeamsMessage(teams []config.Team) []Response {

	embed := discordgo.MessageEmbed{Title: "Teams followed", Color: color}
	for _, team := range teams {
		lines := []string{fmt.Sprintf("Id: `%s`", team.ID)}
		if team.ChannelID != "" {
			lines = append(lines, fmt.Sprintf("Panel posted to <#%s>", team.ChannelID))
		} else {
			lines = append(lines, "Panel only on demand")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("**%s**", team.Name),
			Value:  strings.Join(lines, "\n"),
			Inline: false,
		})
	}
	return []Response{ResponseEmbed{embed}}
}

func PanelMessage(p panel.Panel) Response {
	return ResponseEmbed{*p.Embed()}
}

func RefreshNotRunning() []Response {
	return []Response{ResponseString{"Panels are not being posted to any channel"}}
}

func PanelsRefreshed(refreshed int, total int) []Response {
	return []Response{ResponseString{fmt.Sprintf("Refreshed %d of %d panels", refreshed, total)}}
}
