package bot

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const prefix string = "teampanel"

const (
	COMMAND_STATUS  = iota
	COMMAND_TEAMS   = iota
	COMMAND_REFRESH = iota
	COMMAND_HELP    = iota
)

const (
	PARSEID_OK                     = iota
	PARSEID_NO_BOT_PREFIX          = iota
	PARSEID_NO_COMMAND             = iota
	PARSEID_COMMAND_NOT_RECOGNISED = iota
	PARSEID_UNEXPECTED_INPUT       = iota
)

// Names of the commands, as typed after the prefix
var commandNames map[int]string = map[int]string{
	COMMAND_STATUS:  "status",
	COMMAND_TEAMS:   "teams",
	COMMAND_REFRESH: "refresh",
	COMMAND_HELP:    "help",
}

var errorMessages map[int]string = map[int]string{
	PARSEID_NO_COMMAND:             "No command provided",
	PARSEID_COMMAND_NOT_RECOGNISED: "Command `%s` not recognised",
	PARSEID_UNEXPECTED_INPUT:       "Command `%s` does not take any argument",
}

type ParseResult struct {
	command      int
	parseid      int
	errorMessage string
	arguments    string
}

func Parse(message string) ParseResult {

	unexpectedInput := func(command int, commandString string) ParseResult {
		parseid := PARSEID_UNEXPECTED_INPUT
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}

	// The message has to start with the bot prefix as a word of its own
	message = strings.TrimSpace(message)
	words := strings.Fields(message)
	if len(words) == 0 || words[0] != prefix {
		log.Debug().Msg("Reject message not intended for the bot")
		return ParseResult{parseid: PARSEID_NO_BOT_PREFIX}
	}

	// Get the command if valid
	words = words[1:]
	if len(words) == 0 {
		parseid := PARSEID_NO_COMMAND
		return ParseResult{parseid: parseid, errorMessage: errorMessages[parseid]}
	}
	commandString := strings.ToLower(words[0])
	words = words[1:]

	// Match the command
	switch commandString {
	case "status":
		// teampanel status [team_name]
		return ParseResult{command: COMMAND_STATUS, parseid: PARSEID_OK, arguments: strings.Join(words, " ")}
	case "teams":
		// teampanel teams
		if len(words) > 0 {
			return unexpectedInput(COMMAND_TEAMS, commandString)
		}
		return ParseResult{command: COMMAND_TEAMS, parseid: PARSEID_OK}
	case "refresh":
		// teampanel refresh
		if len(words) > 0 {
			return unexpectedInput(COMMAND_REFRESH, commandString)
		}
		return ParseResult{command: COMMAND_REFRESH, parseid: PARSEID_OK}
	case "help":
		// teampanel help
		return ParseResult{command: COMMAND_HELP, parseid: PARSEID_OK}
	default:
		parseid := PARSEID_COMMAND_NOT_RECOGNISED
		return ParseResult{parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}
}
