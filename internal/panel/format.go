package panel

import (
	"fmt"
	"time"
)

const MAX_COMPETITION_LENGTH = 20

// Layouts accepted for the start time of a match, most common first
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Format the time a member has been online, e.g. 45m, 2h or 1h 5m
func FormatOnlineTime(since time.Duration) string {
	minutes := int(since / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours, rest := minutes/60, minutes%60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

// Format the start of a match as MM/DD.
// Missing or unparseable times give "Recent"
func FormatMatchDate(startedAt string) string {
	if startedAt == "" {
		return "Recent"
	}
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, startedAt); err == nil {
			return date.Format("01/02")
		}
	}
	return "Recent"
}

func StatusGlyph(status string) string {
	switch status {
	case "FINISHED":
		return "✅"
	case "ONGOING":
		return "🔴"
	default:
		return "📅"
	}
}

func ShortCompetition(competition string) string {
	runes := []rune(competition)
	if len(runes) > MAX_COMPETITION_LENGTH {
		return string(runes[:MAX_COMPETITION_LENGTH]) + "..."
	}
	return competition
}
