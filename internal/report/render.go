package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(20)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
)

// Render writes the summaries in the given format.
func Render(w io.Writer, summaries []Summary, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			return errors.Wrap(err, "encode report")
		}

		return nil
	case FormatText, "":
		for _, s := range summaries {
			if _, err := fmt.Fprintln(w, renderText(s)); err != nil {
				return errors.Wrap(err, "write report")
			}
		}

		return nil
	default:
		return errors.Errorf("unknown report format %q", format)
	}
}

func renderText(s Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(s.Name))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("matches", fmt.Sprintf("%d", s.Matches))
	row("staking periods", fmt.Sprintf("%d (%d open)", len(s.Intervals), s.OpenIntervals))
	row("horizon", fmt.Sprintf("%d", s.Horizon))
	row("staked", formatSeconds(s.StakedSeconds))
	row("high yield", formatSeconds(s.HighYieldSeconds))
	row("high yield share", s.HighYieldShare.StringFixed(sharePrecision))

	for _, w := range s.Windows {
		row("window", w.Window.String()+" "+formatSeconds(w.Seconds))
	}

	return boxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func formatSeconds(seconds int64) string {
	return fmt.Sprintf("%ds (%s)", seconds, time.Duration(seconds)*time.Second)
}
