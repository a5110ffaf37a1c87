// Package app wires configuration, logging and shared resources for the CLI commands.
package app

import (
	"context"
	"github.com/gookit/color"
	"github.com/myrjola/detectivequest/internal/casefile"
	"github.com/myrjola/detectivequest/internal/config"
	"github.com/myrjola/detectivequest/internal/console"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/logging"
	"github.com/myrjola/detectivequest/internal/repositories"
	"github.com/myrjola/detectivequest/internal/sqlite"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"os"
)

var ErrJournalDisabled = errors.NewSentinel("verdict journal disabled, set --journal or DETECTIVEQUEST_JOURNAL_URL")

// Persistent flag names shared by every command.
const (
	FlagCase     = "case"
	FlagLang     = "lang"
	FlagColor    = "color"
	FlagJournal  = "journal"
	FlagLogLevel = "log-level"
)

// AddFlags registers the persistent flags on root.
func AddFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String(FlagCase, "", "YAML case file, defaults to the built-in mansion")
	flags.String(FlagLang, "", "message language: pt_BR or en")
	flags.String(FlagColor, "", "colored output: auto, always or never")
	flags.String(FlagJournal, "", "SQLite verdict journal, disabled when empty")
	flags.String(FlagLogLevel, "", "log level: debug, info, warn or error")
}

// App holds what a command needs to run.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer
}

// New loads the configuration from the environment and lets flags set on cmd override it.
func New(cmd *cobra.Command) (*App, error) {
	var (
		cfg   *config.Config
		level slog.Level
		err   error
	)
	if cfg, err = config.Load(os.LookupEnv); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	overrides := map[string]*string{
		FlagCase:     &cfg.CaseFile,
		FlagLang:     &cfg.Lang,
		FlagColor:    &cfg.Color,
		FlagJournal:  &cfg.JournalURL,
		FlagLogLevel: &cfg.LogLevel,
	}
	for name, field := range overrides {
		if !cmd.Flags().Changed(name) {
			continue
		}
		if *field, err = cmd.Flags().GetString(name); err != nil {
			return nil, errors.Wrap(err, "read flag", slog.String("flag", name))
		}
	}
	if level, err = logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}
	return &App{
		Config: cfg,
		Logger: logging.NewLogger(cmd.ErrOrStderr(), level),
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
	}, nil
}

// Case loads the configured case file or the built-in mansion.
func (a *App) Case() (*casefile.Case, error) {
	if a.Config.CaseFile == "" {
		return casefile.Default(), nil
	}
	c, err := casefile.Load(a.Config.CaseFile)
	if err != nil {
		return nil, errors.Wrap(err, "load case")
	}
	return c, nil
}

// Console creates the player console. Auto color is enabled only when the output is a terminal.
func (a *App) Console() (*console.Console, error) {
	fd := -1
	if f, ok := a.Out.(*os.File); ok {
		fd = int(f.Fd())
	}
	enabled, err := console.ColorEnabled(a.Config.Color, fd)
	if err != nil {
		return nil, errors.Wrap(err, "resolve color mode")
	}
	if enabled && a.Config.Color == console.ColorAlways {
		color.ForceOpenColor()
	}
	c, err := console.New(a.In, a.Out, console.Options{Lang: a.Config.Lang, Color: enabled}, a.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "create console")
	}
	return c, nil
}

// JournalEnabled reports whether verdicts are recorded.
func (a *App) JournalEnabled() bool {
	return a.Config.JournalURL != ""
}

// Journal opens the verdict journal. The returned close function optimizes and closes the database.
func (a *App) Journal(ctx context.Context) (*repositories.VerdictRepository, func() error, error) {
	if !a.JournalEnabled() {
		return nil, nil, ErrJournalDisabled
	}
	dbs, err := sqlite.NewDatabase(ctx, a.Config.JournalURL, a.Logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open journal", slog.String("url", a.Config.JournalURL))
	}
	closeFn := func() error {
		return errors.Join(dbs.Optimize(context.WithoutCancel(ctx)), dbs.Close())
	}
	return repositories.NewVerdictRepository(dbs, a.Logger), closeFn, nil
}
