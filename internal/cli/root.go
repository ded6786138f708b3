package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/data-castle/daybook/internal/config"
	"github.com/data-castle/daybook/internal/journal"
	ucli "github.com/urfave/cli/v3"
)

var Version = "1.0.0"

// app carries the streams and clock every command works against
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
	}
}

// Run executes the command line and returns the process exit code
func Run(args []string) int {
	return newApp(os.Stdin, os.Stdout, os.Stderr).run(context.Background(), args)
}

func (a *app) run(ctx context.Context, args []string) int {
	if err := a.command().Run(ctx, args); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) command() *ucli.Command {
	return &ucli.Command{
		Name:           "daybook",
		Usage:          "A personal journal for your mood, goals and notes, one entry per day",
		Version:        Version,
		Writer:         a.stdout,
		ErrWriter:      a.stderr,
		ExitErrHandler: func(context.Context, *ucli.Command, error) {},
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: ~/.daybook/config.yaml)",
				Sources: ucli.EnvVars("DAYBOOK_CONFIG"),
			},
			&ucli.StringFlag{
				Name:    "journal",
				Aliases: []string{"j"},
				Usage:   "Journal to use (default: configured default journal)",
				Sources: ucli.EnvVars("DAYBOOK_JOURNAL"),
			},
			&ucli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Use this JSON file directly, ignoring configured journals",
			},
			&ucli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output to stderr",
			},
		},
		Commands: []*ucli.Command{
			a.addCommand(),
			a.searchCommand(),
			a.listCommand(),
			a.deleteCommand(),
			a.initCommand(),
			a.listJournalsCommand(),
			a.setDefaultCommand(),
			a.removeJournalCommand(),
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(_ context.Context, _ *ucli.Command) error {
					return a.printf("daybook version %s\n", Version)
				},
			},
		},
		Action: func(_ context.Context, cmd *ucli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("unknown command: %s", cmd.Args().First())
			}
			if err := ucli.ShowAppHelp(cmd); err != nil {
				return err
			}
			return fmt.Errorf("a command is required")
		},
	}
}

// loadConfig reads the config named by --config, or the default location
func (a *app) loadConfig(cmd *ucli.Command) (*config.Config, string, error) {
	configPath := cmd.String("config")
	if configPath == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return nil, "", err
		}
		configPath = p
	}

	configPath, err := config.ExpandHome(configPath)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfigFile(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, configPath, nil
}

// openJournal resolves the journal file from --file, --journal or the
// configured default and loads it.
func (a *app) openJournal(cmd *ucli.Command) (*journal.Store, error) {
	level := slog.LevelWarn
	var path string

	if file := cmd.String("file"); file != "" {
		p, err := config.ExpandHome(file)
		if err != nil {
			return nil, err
		}
		path = p
	} else {
		cfg, _, err := a.loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		level = cfg.LogLevel

		var journalCfg *config.Journal
		if name := cmd.String("journal"); name != "" {
			journalCfg, err = cfg.GetJournal(name)
			if err != nil {
				return nil, fmt.Errorf("failed to get journal: %w", err)
			}
		} else {
			journalCfg, err = cfg.GetDefaultJournal()
			if err != nil {
				return nil, fmt.Errorf("failed to get default journal: %w\nHint: Use -j flag to specify a journal, or set a default with 'daybook set-default <name>'", err)
			}
		}

		path, err = config.ExpandHome(journalCfg.Path)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	store, err := journal.Open(path, journal.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return store, nil
}

func (a *app) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(a.stdout, format, args...)
	return err
}

func (a *app) println(args ...any) error {
	_, err := fmt.Fprintln(a.stdout, args...)
	return err
}
