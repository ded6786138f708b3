package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/data-castle/daybook/internal/config"
	"github.com/data-castle/daybook/internal/storage"
	ucli "github.com/urfave/cli/v3"
)

func (a *app) initCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "init",
		Usage: "Register a journal and create its file",
		Description: `Example:
  daybook init -n work -p ~/journals/work.json`,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "Journal name",
				Required: true,
			},
			&ucli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "Path of the journal's JSON file",
				Required: true,
			},
		},
		Action: a.runInit,
	}
}

func (a *app) runInit(_ context.Context, cmd *ucli.Command) error {
	name := cmd.String("name")

	journalPath, err := config.ExpandHome(cmd.String("path"))
	if err != nil {
		return err
	}
	journalPath, err = filepath.Abs(journalPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	cfg, configPath, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	file := storage.NewFile(journalPath)
	if !file.Exists() {
		if err := file.WriteEntries(nil); err != nil {
			return fmt.Errorf("failed to initialize journal: %w", err)
		}
	} else if _, err := file.ReadEntries(); err != nil {
		return fmt.Errorf("existing journal file is not usable: %w", err)
	}

	if existing, exists := cfg.Journals[name]; exists {
		fmt.Fprintf(a.stderr, "Warning: A journal named '%s' already exists at %s\n", name, existing.Path)
		fmt.Fprintf(a.stderr, "Updating journal location to: %s\n", journalPath)
		existing.Path = journalPath
	} else if err := cfg.AddJournal(&config.Journal{Name: name, Path: journalPath}); err != nil {
		return fmt.Errorf("failed to add journal to config: %w", err)
	}

	if err := cfg.SaveFile(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if err := a.printf("Journal '%s' initialized at %s\n", name, journalPath); err != nil {
		return err
	}
	return a.printf("Start adding entries: daybook -j %s add --mood happy \"Your first entry\"\n", name)
}
