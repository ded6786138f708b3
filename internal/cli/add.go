package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/data-castle/daybook/pkg/models"
	ucli "github.com/urfave/cli/v3"
)

func (a *app) addCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "add",
		Usage:     "Add the entry for a day, replacing any entry already recorded for it",
		ArgsUsage: "[notes...]",
		Description: `Notes are taken from the arguments. Pass "-" to read them from stdin.

Examples:
  daybook add --mood happy --goal "finish the report" "Slept well."
  daybook add -d 2024-01-03 -m tired -
`,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    "date",
				Aliases: []string{"d"},
				Usage:   "Entry date (YYYY-MM-DD, default: today)",
			},
			&ucli.StringFlag{
				Name:    "mood",
				Aliases: []string{"m"},
				Usage:   "How you feel, in a word or two",
			},
			&ucli.StringFlag{
				Name:    "goal",
				Aliases: []string{"g"},
				Usage:   "The day's goal",
			},
		},
		Action: a.runAdd,
	}
}

func (a *app) runAdd(_ context.Context, cmd *ucli.Command) error {
	date := cmd.String("date")
	if date == "" {
		date = a.now().Format(models.DateLayout)
	}

	notes, err := a.readNotes(cmd.Args().Slice())
	if err != nil {
		return err
	}

	ent, err := models.NewEntryAt(a.now(), date, cmd.String("mood"), cmd.String("goal"), notes)
	if err != nil {
		return err
	}

	store, err := a.openJournal(cmd)
	if err != nil {
		return err
	}

	replaced, err := store.Add(*ent)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}

	verb := "saved"
	if replaced {
		verb = "replaced"
	}
	return a.printf("Entry %s: %s (%s)\n", verb, ent.Date, ent.ID[:8])
}

// readNotes joins the note arguments, or reads stdin when the only argument is "-"
func (a *app) readNotes(args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read notes from stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
