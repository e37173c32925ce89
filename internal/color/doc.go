// Package color provides the semantic color palette used by the TUI
// reporter.
//
// # Core Functionality
//
// The package provides:
//   - A Profile of lipgloss.AdaptiveColor values, each with a light and
//     a dark variant
//   - Initialize(isDarkMode), which tells lipgloss which background to
//     adapt against; the caller decides isDarkMode (internal/app passes
//     lipgloss.HasDarkBackground())
//   - GetProfile, which returns the active palette
//
// The package itself reads no environment variables and detects no
// terminal capabilities; any such detection is done by lipgloss.
//
// # Theme System
//
// Colors are organized into semantic categories:
//   - Success: passing cases
//   - Warning: the running-case spinner
//   - Error: failing cases
//   - Info: skipped cases
//   - Muted: de-emphasized text such as failure details
//
// # Usage Example
//
//	profile := color.GetProfile()
//
//	passStyle := lipgloss.NewStyle().
//	    Foreground(profile.Success)
//
//	failStyle := lipgloss.NewStyle().
//	    Foreground(profile.Error).
//	    Bold(true)
//
//	fmt.Println(passStyle.Render("PASS"))
//	fmt.Println(failStyle.Render("FAIL"))
//
// # Thread Safety
//
// Initialize and GetProfile are not synchronized; Initialize is called
// once at startup, before any reporter goroutine reads the palette.
package color
