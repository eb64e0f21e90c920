package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vidurl/internal/media"
)

var (
	bestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	idStyle    = lipgloss.NewStyle().Width(14)
)

// renderOutcome formats a result for a human on a terminal.
// Candidates are listed in the same ascending order as the JSON body.
func renderOutcome(out media.Outcome) string {
	switch o := out.(type) {
	case media.Ranked:
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", bestStyle.Render("best"), o.VideoURL)
		for _, c := range o.AllFormats {
			res := "?"
			if c.Resolution != nil {
				res = *c.Resolution
			}
			fmt.Fprintf(&b, "  %s %s %s\n",
				idStyle.Render(c.FormatID),
				faintStyle.Render(fmt.Sprintf("%-10s %-4s", res, c.Ext)),
				c.URL,
			)
		}
		return b.String()
	case media.Failure:
		return fmt.Sprintf("%s %s\n", errorStyle.Render("error"), o.Message)
	default:
		return ""
	}
}
