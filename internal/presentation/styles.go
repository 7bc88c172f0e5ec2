package presentation

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/modelctl/internal/lifecycle"
)

var (
	statusActiveColor     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	statusDeprecatedColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	statusRetiredColor    = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	mutedColor            = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
)

// styles are bound to the formatter's renderer so color is only emitted when
// the destination is a terminal.
type styles struct {
	title      lipgloss.Style
	label      lipgloss.Style
	active     lipgloss.Style
	deprecated lipgloss.Style
	retired    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:      r.NewStyle().Bold(true),
		label:      r.NewStyle().Foreground(mutedColor),
		active:     r.NewStyle().Foreground(statusActiveColor),
		deprecated: r.NewStyle().Foreground(statusDeprecatedColor),
		retired:    r.NewStyle().Foreground(statusRetiredColor).Bold(true),
	}
}

func (s styles) status(name string) string {
	st, err := lifecycle.ParseStatus(name)
	if err != nil {
		return name
	}
	switch st {
	case lifecycle.Deprecated:
		return s.deprecated.Render(name)
	case lifecycle.Retired:
		return s.retired.Render(name)
	default:
		return s.active.Render(name)
	}
}
