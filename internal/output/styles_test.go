package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
		wantDim  bool
	}{
		{name: "available returns green", status: StatusAvailable, wantFG: ColorGreen},
		{name: "added returns green", status: StatusAdded, wantFG: ColorGreen},
		{name: "not installed returns yellow", status: StatusNotInstalled, wantFG: ColorYellow},
		{name: "present returns faint", status: StatusPresent, wantDim: true},
		{name: "install failed returns bold red", status: StatusInstallFailed, wantBold: true, wantFG: ColorBoldRed},
		{name: "not importable returns bold red", status: StatusNotImportable, wantBold: true, wantFG: ColorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestFormatStatusLine(t *testing.T) {
	line := FormatStatusLine("/opt/lib", StatusAdded)
	assert.Contains(t, line, "/opt/lib")
	assert.Contains(t, line, StatusAdded)
}

func TestFormatStatusLine_LongNounKeepsGap(t *testing.T) {
	noun := strings.Repeat("x", 60)
	line := FormatStatusLine(noun, StatusPresent)
	assert.Contains(t, line, noun+"  ")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("done"), "done")
	assert.Contains(t, FormatCheckmark("done"), "✔")
}

func TestFormatRule(t *testing.T) {
	out := FormatRule("Terminal output", 18)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, " Terminal output ", lines[1])
	assert.Contains(t, lines[0], strings.Repeat("-", 18))
}
