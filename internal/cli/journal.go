package cli

import (
	"context"
	"fmt"

	ucli "github.com/urfave/cli/v3"
)

func (a *app) listJournalsCommand() *ucli.Command {
	return &ucli.Command{
		Name:   "list-journals",
		Usage:  "List all configured journals",
		Action: a.runListJournals,
	}
}

func (a *app) runListJournals(_ context.Context, cmd *ucli.Command) error {
	cfg, _, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(cfg.Journals) == 0 {
		if err := a.println("No journals configured"); err != nil {
			return err
		}
		return a.println("\nUse 'daybook init' to create a journal")
	}

	if err := a.println("Configured journals:"); err != nil {
		return err
	}
	for _, name := range cfg.ListJournals() {
		marker := ""
		if name == cfg.DefaultJournal {
			marker = " (default)"
		}
		if err := a.printf("\n  %s%s\n", name, marker); err != nil {
			return err
		}
		if err := a.printf("    Path: %s\n", cfg.Journals[name].Path); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) setDefaultCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "set-default",
		Usage:     "Set the default journal",
		ArgsUsage: "<name>",
		Action:    a.runSetDefault,
	}
}

func (a *app) runSetDefault(_ context.Context, cmd *ucli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("journal name is required\nUsage: daybook set-default <name>")
	}
	name := cmd.Args().First()

	cfg, configPath, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.SetDefaultJournal(name); err != nil {
		return fmt.Errorf("failed to set default: %w", err)
	}

	if err := cfg.SaveFile(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return a.printf("Default journal set to: %s\n", name)
}

func (a *app) removeJournalCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "remove-journal",
		Usage:     "Forget a journal; its file is kept on disk",
		ArgsUsage: "<name>",
		Action:    a.runRemoveJournal,
	}
}

func (a *app) runRemoveJournal(_ context.Context, cmd *ucli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("journal name is required\nUsage: daybook remove-journal <name>")
	}
	name := cmd.Args().First()

	cfg, configPath, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	j, err := cfg.GetJournal(name)
	if err != nil {
		return err
	}
	path := j.Path

	if err := cfg.RemoveJournal(name); err != nil {
		return fmt.Errorf("failed to remove journal: %w", err)
	}

	if err := cfg.SaveFile(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return a.printf("Journal '%s' removed (file kept at %s)\n", name, path)
}
