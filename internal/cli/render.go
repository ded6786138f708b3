package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/data-castle/daybook/pkg/models"
)

const (
	ruleWidth = 40

	noMood  = "unspecified"
	noGoal  = "No specific goal"
	noNotes = "(no text)"
)

// renderer styles entries for the app's stdout; colors are dropped
// automatically when stdout is not a terminal.
type renderer struct {
	app    *app
	header lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
}

func (a *app) newRenderer() *renderer {
	r := lipgloss.NewRenderer(a.stdout)
	return &renderer{
		app:    a,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label:  r.NewStyle().Foreground(lipgloss.Color("245")),
		muted:  r.NewStyle().Faint(true),
	}
}

// entry prints one entry; a positive index is shown in the header
func (r *renderer) entry(ent models.Entry, index int) error {
	header := ent.Date
	if index > 0 {
		header = fmt.Sprintf("Entry #%d - %s", index, ent.Date)
	}

	var b strings.Builder
	rule := r.muted.Render(strings.Repeat("-", ruleWidth))

	b.WriteString(rule + "\n")
	b.WriteString(r.header.Render(header) + "\n")
	if !ent.CreatedAt.IsZero() {
		b.WriteString(r.field("Recorded at", ent.CreatedAt.Local().Format(time.DateTime)))
	}
	b.WriteString(r.field("Mood", orDefault(ent.Mood, noMood)))
	b.WriteString(r.field("Goal", orDefault(ent.Goal, noGoal)))
	b.WriteString("\n")
	if ent.Notes == "" {
		b.WriteString(r.muted.Render(noNotes) + "\n")
	} else {
		b.WriteString(ent.Notes + "\n")
	}
	b.WriteString(rule + "\n")

	_, err := fmt.Fprint(r.app.stdout, b.String())
	return err
}

func (r *renderer) field(name, value string) string {
	return r.label.Render(name+":") + " " + value + "\n"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
