package cli

import (
	"context"
	"fmt"

	"github.com/data-castle/daybook/pkg/models"
	ucli "github.com/urfave/cli/v3"
)

func (a *app) deleteCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "delete",
		Usage:     "Delete the entry recorded for a date",
		ArgsUsage: "<YYYY-MM-DD>",
		Action:    a.runDelete,
	}
}

func (a *app) runDelete(_ context.Context, cmd *ucli.Command) error {
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

	removed, err := store.Delete(date)
	if err != nil {
		return err
	}

	day := date.Format(models.DateLayout)
	if !removed {
		return a.printf("No entry for %s\n", day)
	}
	return a.printf("Deleted entry from %s\n", day)
}
