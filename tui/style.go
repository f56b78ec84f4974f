package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sonnes/fsrunner/session"
)

var (
	// State colors: emerald for running and success, amber for warnings, red for errors.
	colorRunning = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}
	colorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"} // blue
)

var (
	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true).MarginBottom(1)
	styleLabel = lipgloss.NewStyle().Foreground(colorDim).Width(8)
	styleValue = lipgloss.NewStyle().Foreground(colorBright)
	styleURL   = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
	styleEmpty = lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	styleRunning = lipgloss.NewStyle().Foreground(colorRunning).Bold(true)
	styleStopped = lipgloss.NewStyle().Foreground(colorDim)

	styleButton = lipgloss.NewStyle().
			Foreground(colorBright).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 2)
	styleButtonDisabled = styleButton.
				Foreground(colorDim).
				BorderForeground(colorDim)

	styleStatusOK    = lipgloss.NewStyle().Foreground(colorRunning)
	styleStatusWarn  = lipgloss.NewStyle().Foreground(colorWarn)
	styleStatusError = lipgloss.NewStyle().Foreground(colorError).Bold(true)
)

// statusStyle picks the status line color for a result kind.
func statusStyle(k session.Kind) lipgloss.Style {
	switch k {
	case session.KindOK, "":
		return styleStatusOK
	case session.KindPrecondition, session.KindPicker:
		return styleStatusWarn
	default:
		return styleStatusError
	}
}
