package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for all ANSI 256 colors used in the CLI;
// never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module names, paths, URLs.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for successful states (available, added, extracted).
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for states that need the user's attention but are not failures.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failed states (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (module names, paths, URLs).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (installing, downloading, extracting).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (separators, rules).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Status words shared by the install, fetch, and path commands.
const (
	StatusAvailable     = "available"
	StatusNotInstalled  = "not-installed"
	StatusInstallFailed = "install-failed"
	StatusNotImportable = "not-importable"
	StatusAdded         = "added"
	StatusPresent       = "present"
	StatusDownloaded    = "downloaded"
	StatusExtracted     = "extracted"
	StatusCleanedUp     = "cleaned-up"
	StatusUnpacked      = "unpacked"
)

// StatusStyle returns the lipgloss style for a status word.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusAvailable, StatusAdded, StatusDownloaded, StatusExtracted:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusNotInstalled:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusPresent, StatusCleanedUp, StatusUnpacked:
		return lipgloss.NewStyle().Faint(true)
	case StatusInstallFailed, StatusNotImportable:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minNounColumnWidth is the minimum width of the noun column before the
// status suffix, so status words line up.
const minNounColumnWidth = 40

// FormatStatusLine renders a noun with a right-aligned, color-coded status.
func FormatStatusLine(noun, status string) string {
	padding := minNounColumnWidth - len(noun)
	if padding < 2 {
		padding = 2
	}

	return StyleNoun.Render(noun) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatRule renders a titled block header: a dashed rule, the title, and a
// closing rule.
func FormatRule(title string, width int) string {
	rule := StyleDim.Render(strings.Repeat("-", width))
	return rule + "\n " + title + " \n" + rule
}
