package panel

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Team the panel is rendered for, as provided by the caller
type TeamConfig struct {
	Name string
	ID   string
}

type Layout int

const (
	Wide Layout = iota
	Narrow
)

func (layout Layout) String() string {
	switch layout {
	case Wide:
		return "wide"
	case Narrow:
		return "narrow"
	default:
		return fmt.Sprintf("Layout(%d)", int(layout))
	}
}

type Section struct {
	Heading string
	Body    string
	Layout  Layout
}

type Panel struct {
	Title       string
	Description string
	Accent      colorful.Color
	Timestamp   time.Time
	Sections    []Section
	Footer      string
}

// Accents of the panel
var (
	ACCENT_LIVE  = mustHex("#00FF41")
	ACCENT_ERROR = mustHex("#FF0000")
)

func mustHex(hex string) colorful.Color {
	color, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("invalid color %s: %v", hex, err))
	}
	return color
}
