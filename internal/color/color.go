// Package color exposes a small semantic palette so the TUI reporter
// doesn't hardcode ANSI codes.
package color

import "github.com/charmbracelet/lipgloss"

// Profile is a semantic palette for reporter output. Colors are
// lipgloss adaptive colors so they render sensibly on both dark and
// light terminal backgrounds.
type Profile struct {
	Success lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
}

var current = defaultProfile()

func defaultProfile() Profile {
	return Profile{
		Success: lipgloss.AdaptiveColor{Light: "2", Dark: "10"},
		Error:   lipgloss.AdaptiveColor{Light: "1", Dark: "9"},
		Warning: lipgloss.AdaptiveColor{Light: "3", Dark: "11"},
		Info:    lipgloss.AdaptiveColor{Light: "4", Dark: "12"},
		Muted:   lipgloss.AdaptiveColor{Light: "8", Dark: "8"},
	}
}

// Initialize tells lipgloss which background lightness to adapt
// AdaptiveColor values against. Call once at startup before any style
// built from GetProfile() renders.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
	current = defaultProfile()
}

// GetProfile returns the active semantic palette.
func GetProfile() Profile {
	return current
}
