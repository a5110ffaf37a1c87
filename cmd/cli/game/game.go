package game

import (
	"context"
	"github.com/myrjola/detectivequest/cmd/cli/app"
	"github.com/myrjola/detectivequest/internal/casefile"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/investigation"
	"github.com/myrjola/detectivequest/internal/mansion"
	"github.com/myrjola/detectivequest/internal/models"
	"github.com/myrjola/detectivequest/internal/observability"
	"github.com/myrjola/detectivequest/internal/pprofserver"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"
)

var Group = &cobra.Group{
	ID:    "game",
	Title: "Investigation",
}

// Version is reported to the tracing backend.
var Version = "dev"

var Play = &cobra.Command{
	Use:     "play",
	GroupID: "game",
	Short:   "Explore the mansion and accuse a suspect",
	Long: `Starts an investigation in the hall of the mansion. Move with e (left) and d (right), stop with s, then
name the suspect the collected clues point to.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := app.New(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err = play(ctx, a); err != nil {
			a.Logger.LogAttrs(ctx, slog.LevelError, "investigation failed", errors.SlogError(err))
			return err
		}
		return nil
	},
}

func play(ctx context.Context, a *app.App) error {
	var (
		c       *casefile.Case
		tp      *observability.TracerProvider
		session *investigation.Session
		verdict investigation.Verdict
		err     error
	)
	if c, err = a.Case(); err != nil {
		return errors.Wrap(err, "load case")
	}
	con, err := a.Console()
	if err != nil {
		return errors.Wrap(err, "open console")
	}
	if tp, err = observability.InitTracing(ctx, observability.Config{
		ServiceName:    "detectivequest",
		ServiceVersion: Version,
		Enabled:        a.Config.TracesEnabled,
		Endpoint:       a.Config.OTLPEndpoint,
		Insecure:       true,
	}); err != nil {
		return errors.Wrap(err, "init tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second) //nolint:mnd // flush budget
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			a.Logger.LogAttrs(ctx, slog.LevelWarn, "could not flush traces", errors.SlogError(shutdownErr))
		}
	}()

	if a.Config.PprofAddr != "" {
		var profiles *pprofserver.Server
		if profiles, err = pprofserver.Launch(ctx, a.Config.PprofAddr, a.Logger); err != nil {
			return errors.Wrap(err, "launch pprof server")
		}
		defer func() {
			if closeErr := profiles.Close(); closeErr != nil {
				a.Logger.LogAttrs(ctx, slog.LevelWarn, "could not stop pprof server", errors.SlogError(closeErr))
			}
		}()
	}

	if session, err = investigation.NewSession(c, a.Logger, tp.Tracer("investigation")); err != nil {
		return errors.Wrap(err, "start session")
	}
	defer session.Close()

	if verdict, err = session.Play(ctx, con, con); err != nil {
		return errors.Wrap(err, "play", slog.String("session", session.ID.String()))
	}
	if a.JournalEnabled() {
		if err = record(ctx, a, session, verdict); err != nil {
			return errors.Wrap(err, "record verdict")
		}
	}
	return nil
}

func record(ctx context.Context, a *app.App, session *investigation.Session, v investigation.Verdict) error {
	repo, closeJournal, err := a.Journal(ctx)
	if err != nil {
		return err
	}
	_, err = repo.Record(ctx, models.Verdict{
		ID:        0,
		SessionID: session.ID.String(),
		CaseTitle: session.Title,
		Accused:   v.Accused,
		Matches:   v.Matches,
		Threshold: v.Threshold,
		Status:    models.VerdictStatus(v.Status.String()),
		CreatedAt: time.Now().UTC(),
		Clues:     v.Clues,
	})
	return errors.Join(err, closeJournal())
}

var Map = &cobra.Command{
	Use:     "map",
	GroupID: "game",
	Short:   "Print the rooms of the case",
	Long:    "Prints the room tree of the case with the clue hidden in each room. Left children come first.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			a   *app.App
			c   *casefile.Case
			m   *mansion.Map
			err error
		)
		if a, err = app.New(cmd); err != nil {
			return err
		}
		if c, err = a.Case(); err != nil {
			return err
		}
		con, err := a.Console()
		if err != nil {
			return err
		}
		if m, err = c.BuildMap(); err != nil {
			return errors.Wrap(err, "build map")
		}
		defer m.Release()
		rules := c.Rules()

		con.Heading(con.T("Mansion of %s:", c.Title))
		m.Walk(func(id mansion.RoomID, depth int) {
			name := m.Name(id)
			clue, ok := rules.ClueFor(name)
			if !ok {
				clue = con.T("no clue")
			} else {
				clue = con.Clue(clue)
			}
			con.Println(strings.Repeat("  ", depth) + con.Room(name) + " (" + clue + ")")
		})
		return nil
	},
}

var Suspects = &cobra.Command{
	Use:     "suspects",
	GroupID: "game",
	Short:   "List the suspects of the case",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			a   *app.App
			c   *casefile.Case
			err error
		)
		if a, err = app.New(cmd); err != nil {
			return err
		}
		if c, err = a.Case(); err != nil {
			return err
		}
		con, err := a.Console()
		if err != nil {
			return err
		}
		ix := c.SuspectIndex()
		defer ix.Release()
		con.Heading(con.T("Suspects in %s:", c.Title))
		for _, name := range ix.Suspects() {
			con.Println(" - " + name)
		}
		return nil
	},
}
