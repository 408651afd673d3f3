// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import "github.com/charmbracelet/lipgloss"

// Palette defines the application's color scheme.
var (
	Text    = lipgloss.Color("#cdd6f4")
	Mauve   = lipgloss.Color("#cba6f7")
	Red     = lipgloss.Color("#f38ba8")
	Yellow  = lipgloss.Color("#f9e2af")
	Surface = lipgloss.Color("#313244")

	// Semantic mappings
	AccentColor  = Mauve
	WarningColor = Yellow
	HiRed        = Red
	BorderColor  = Surface
)
