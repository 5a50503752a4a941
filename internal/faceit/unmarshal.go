package faceit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

func UnmarshalTeam(data []byte) (*Team, error) {

	var team Team
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func UnmarshalMatchPage(data []byte) (*MatchPage, error) {

	// unmarshal
	var raw struct {
		Items []struct {
			MatchId         string          `json:"match_id"`
			Status          string          `json:"status"`
			StartedAt       json.RawMessage `json:"started_at"`
			CompetitionName string          `json:"competition_name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// A page without items stays without items
	if raw.Items == nil {
		return &MatchPage{}, nil
	}

	page := MatchPage{Items: make([]Match, 0, len(raw.Items))}
	for _, item := range raw.Items {
		startedAt, err := decodeStartedAt(item.StartedAt)
		if err != nil {
			// An unreadable start time only loses the date of the match
			log.Debug().Err(err).Str("match_id", item.MatchId).Msg("Ignoring start time of match")
			startedAt = ""
		}
		page.Items = append(page.Items, Match{
			MatchId:         item.MatchId,
			Status:          item.Status,
			StartedAt:       startedAt,
			CompetitionName: item.CompetitionName,
		})
	}
	return &page, nil
}

// Last second of year 9999
const maxStartedAt = 253402300799

// The start time of a match comes either as an ISO-8601 string or as
// unix seconds. Numbers are converted to RFC3339 in UTC, strings are kept untouched.
// Anything else is an error
func decodeStartedAt(raw json.RawMessage) (string, error) {

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return "", err
		}
		return value, nil
	case '{', '[', 't', 'f':
		return "", fmt.Errorf("start time %s is not a string nor a number", raw)
	}

	seconds, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("start time %s is not a number", raw)
	}
	if seconds <= 0 {
		return "", nil
	}
	if seconds > maxStartedAt {
		return "", fmt.Errorf("start time %s is out of range", raw)
	}
	return time.Unix(int64(seconds), 0).UTC().Format(time.RFC3339), nil
}
