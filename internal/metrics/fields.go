package metrics

// Metric attribute keys shared by every instrument
const (
	AttrTeam    = "team_id"
	AttrOutcome = "outcome"
	AttrCommand = "command"
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
)

// Values of AttrOutcome
const (
	OutcomeOk       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)
