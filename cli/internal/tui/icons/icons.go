// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	if env := os.Getenv("SDCCH_NERD_FONTS"); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"} {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}
	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Radio network
	Cell       = Icon{"󰀂", "▲"} // nf-md-access_point
	Signalling = Icon{"󰘖", "≡"} // nf-md-format_list_bulleted
	Traffic    = Icon{"󰏲", "☎"} // nf-md-phone
	Packet     = Icon{"󰛳", "⇅"} // nf-md-swap_vertical
	Conversion = Icon{"󰑐", "⇄"} // nf-md-repeat

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle

	// Charts
	Chart = Icon{"󰄭", "▁"} // nf-md-chart_line

	// Actions
	Save  = Icon{"󰆓", "⤓"} // nf-md-content_save
	Table = Icon{"󰓫", "▦"} // nf-md-table
	New   = Icon{"󰐕", "+"} // nf-md-plus
	Back  = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit  = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App      = Icon{"󰐻", "◈"} // nf-md-radio_tower
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
	Backend  = Icon{"󰒋", "▣"} // nf-md-server
)
