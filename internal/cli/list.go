package cli

import (
	"context"
	"fmt"
	"slices"

	ucli "github.com/urfave/cli/v3"
)

func (a *app) listCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "list",
		Usage: "List entries, oldest first",
		Flags: []ucli.Flag{
			&ucli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Only show the most recent N entries (0 shows all)",
			},
		},
		Action: a.runList,
	}
}

func (a *app) runList(_ context.Context, cmd *ucli.Command) error {
	count := int(cmd.Int("count"))
	if count < 0 {
		return fmt.Errorf("--count must not be negative")
	}

	store, err := a.openJournal(cmd)
	if err != nil {
		return err
	}

	entries := slices.Collect(store.ListAll())
	if len(entries) == 0 {
		return a.println("No entries yet. Try adding one!")
	}

	offset := 0
	if count > 0 && count < len(entries) {
		offset = len(entries) - count
	}

	r := a.newRenderer()
	for i, ent := range entries[offset:] {
		if err := r.entry(ent, offset+i+1); err != nil {
			return err
		}
	}

	return a.printf("Total entries: %d\n", len(entries))
}
