package panel

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Accent in the integer representation used by discord
func (panel Panel) Color() int {
	r, g, b := panel.Accent.RGB255()
	return int(r)<<16 | int(g)<<8 | int(b)
}

// Build the discord embed for this panel.
// Narrow sections are inlined so that discord shows them side by side
func (panel Panel) Embed() *discordgo.MessageEmbed {

	embed := discordgo.MessageEmbed{
		Title:       panel.Title,
		Description: panel.Description,
		Color:       panel.Color(),
	}
	if !panel.Timestamp.IsZero() {
		embed.Timestamp = panel.Timestamp.Format(time.RFC3339)
	}
	for _, section := range panel.Sections {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   section.Heading,
			Value:  section.Body,
			Inline: section.Layout == Narrow,
		})
	}
	if panel.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: panel.Footer}
	}
	return &embed
}
