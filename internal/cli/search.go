package cli

import (
	"context"
	"fmt"

	"github.com/data-castle/daybook/pkg/models"
	ucli "github.com/urfave/cli/v3"
)

func (a *app) searchCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "search",
		Aliases:   []string{"show"},
		Usage:     "Show the entry recorded for a date",
		ArgsUsage: "<YYYY-MM-DD>",
		Flags: []ucli.Flag{
			&ucli.BoolFlag{
				Name:  "yaml",
				Usage: "Print the entry as YAML",
			},
		},
		Action: a.runSearch,
	}
}

func (a *app) runSearch(_ context.Context, cmd *ucli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("exactly one date is required (YYYY-MM-DD)")
	}

	date, err := models.ParseDate(cmd.Args().First())
	if err != nil {
		return err
	}

	store, err := a.openJournal(cmd)
	if err != nil {
		return err
	}

	ent, ok := store.FindByDate(date)
	if !ok {
		return a.printf("No entry for %s\n", date.Format(models.DateLayout))
	}

	if cmd.Bool("yaml") {
		data, err := ent.ToYaml()
		if err != nil {
			return fmt.Errorf("failed to render entry: %w", err)
		}
		_, err = a.stdout.Write(data)
		return err
	}

	return a.newRenderer().entry(ent, 0)
}
