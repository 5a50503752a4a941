package faceit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"teampanel/internal/common"

	"github.com/rs/zerolog/log"
)

// Default location of the FACEIT data API
const DEFAULT_BASE_URL = "https://open.faceit.com/data/v4"

// Routes inside the FACEIT data API
const ROUTE_TEAM = "/teams/%s"
const ROUTE_TEAM_MATCHES = "/teams/%s/matches?offset=0&limit=%d"

type FaceitApi struct {
	baseUrl string
	proxy   common.Proxy
}

func NewFaceitApi(baseUrl string, apiKey string, client *http.Client) FaceitApi {

	if baseUrl == "" {
		baseUrl = DEFAULT_BASE_URL
	}
	header := map[string]string{"Accept": "application/json"}
	if apiKey != "" {
		header["Authorization"] = "Bearer " + apiKey
	}

	return FaceitApi{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		proxy:   common.NewProxy(header, client),
	}
}

// Get the team with the provided id.
// A team that does not exist is not an error: nil is returned instead
func (faceit *FaceitApi) GetTeamById(ctx context.Context, teamId string) (*Team, error) {

	// Request
	data, err := faceit.request(ctx, fmt.Sprintf(ROUTE_TEAM, url.PathEscape(teamId)))
	if errors.Is(err, common.ErrNotFound) {
		log.Debug().Str("team_id", teamId).Msg("Team not found")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get team %s: %w", teamId, err)
	}

	// Decode
	team, err := UnmarshalTeam(data)
	if err != nil {
		return nil, fmt.Errorf("team %s is not correctly formatted: %w", teamId, err)
	}
	log.Debug().Str("team_id", teamId).Msg(fmt.Sprintf("Found team %s with %d members", team.Name, len(team.Members)))

	return team, nil
}

// Get at most limit of the most recent matches of the provided team.
// A team that does not exist has no page: nil is returned instead
func (faceit *FaceitApi) GetTeamMatches(ctx context.Context, teamId string, limit int) (*MatchPage, error) {

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	// Request
	data, err := faceit.request(ctx, fmt.Sprintf(ROUTE_TEAM_MATCHES, url.PathEscape(teamId), limit))
	if errors.Is(err, common.ErrNotFound) {
		log.Debug().Str("team_id", teamId).Msg("No matches found for team")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get matches of team %s: %w", teamId, err)
	}

	// Decode
	page, err := UnmarshalMatchPage(data)
	if err != nil {
		return nil, fmt.Errorf("matches of team %s are not correctly formatted: %w", teamId, err)
	}
	log.Debug().Str("team_id", teamId).Msg(fmt.Sprintf("Found %d recent matches", len(page.Items)))

	return page, nil
}

func (faceit *FaceitApi) request(ctx context.Context, route string) ([]byte, error) {

	address := faceit.baseUrl + route
	log.Debug().Msg(fmt.Sprintf("Requesting to url %s", address))
	return faceit.proxy.Request(ctx, address)
}
