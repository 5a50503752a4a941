package faceit

type TeamId string

type Member struct {
	UserId   string `json:"user_id"`
	Nickname string `json:"nickname"`
}

type Team struct {
	TeamId   TeamId   `json:"team_id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`
	Members  []Member `json:"members"`
}

// A single entry of the match history of a team.
// StartedAt is kept as an ISO-8601 string and is empty when unknown
type Match struct {
	MatchId         string
	Status          string
	StartedAt       string
	CompetitionName string
}

type MatchPage struct {
	Items []Match
}
