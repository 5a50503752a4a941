package bot

import "testing"

func TestParseCommands(t *testing.T) {
	cases := []struct {
		message   string
		command   int
		arguments string
	}{
		{"teampanel status", COMMAND_STATUS, ""},
		{"teampanel status Team Falcons", COMMAND_STATUS, "Team Falcons"},
		{"  teampanel   STATUS   Falcons ", COMMAND_STATUS, "Falcons"},
		{"teampanel teams", COMMAND_TEAMS, ""},
		{"teampanel refresh", COMMAND_REFRESH, ""},
		{"teampanel help", COMMAND_HELP, ""},
	}

	for _, c := range cases {
		result := Parse(c.message)
		if result.parseid != PARSEID_OK {
			t.Errorf("%q: expected ok, got parse id %d (%s)", c.message, result.parseid, result.errorMessage)
			continue
		}
		if result.command != c.command || result.arguments != c.arguments {
			t.Errorf("%q: unexpected result %+v", c.message, result)
		}
	}
}

func TestParseRejections(t *testing.T) {
	cases := map[string]int{
		"hello there":          PARSEID_NO_BOT_PREFIX,
		"teampanelstatus":      PARSEID_NO_BOT_PREFIX,
		"":                     PARSEID_NO_BOT_PREFIX,
		"teampanel":            PARSEID_NO_COMMAND,
		"teampanel dance":      PARSEID_COMMAND_NOT_RECOGNISED,
		"teampanel teams all":  PARSEID_UNEXPECTED_INPUT,
		"teampanel refresh me": PARSEID_UNEXPECTED_INPUT,
	}

	for message, parseid := range cases {
		result := Parse(message)
		if result.parseid != parseid {
			t.Errorf("%q: expected parse id %d, got %d", message, parseid, result.parseid)
		}
		if parseid != PARSEID_NO_BOT_PREFIX && result.errorMessage == "" {
			t.Errorf("%q: expected an error message", message)
		}
	}
}
