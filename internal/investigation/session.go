// Package investigation runs one game session: the player explores the mansion collecting clues and finally accuses a
// suspect.
package investigation

import (
	"context"
	"github.com/google/uuid"
	"github.com/myrjola/detectivequest/internal/casefile"
	"github.com/myrjola/detectivequest/internal/clues"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/ledger"
	"github.com/myrjola/detectivequest/internal/logging"
	"github.com/myrjola/detectivequest/internal/mansion"
	"github.com/myrjola/detectivequest/internal/suspects"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
	"slices"
)

// Session owns the state of one investigation. Sessions never share structures, so any number can run side by side.
type Session struct {
	ID        uuid.UUID
	Title     string
	intro     string
	mansion   *mansion.Map
	rules     clues.Rules
	suspects  *suspects.Index
	ledger    *ledger.Ledger
	threshold int
	current   mansion.RoomID
	visited   mapset.Set[string]
	steps     int
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewSession builds fresh structures for c.
func NewSession(c *casefile.Case, logger *slog.Logger, tracer trace.Tracer) (*Session, error) {
	var (
		m   *mansion.Map
		err error
	)
	if m, err = c.BuildMap(); err != nil {
		return nil, errors.Wrap(err, "build mansion", slog.String("case", c.Title))
	}
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = casefile.DefaultThreshold
	}
	s := &Session{
		ID:        uuid.New(),
		Title:     c.Title,
		intro:     c.Intro,
		mansion:   m,
		rules:     c.Rules(),
		suspects:  c.SuspectIndex(),
		ledger:    ledger.New(),
		threshold: threshold,
		current:   m.Root(),
		visited:   mapset.New[string](),
		steps:     0,
		logger:    logger.With("source", "Session"),
		tracer:    tracer,
	}
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, "session started",
		slog.String("session", s.ID.String()), slog.String("case", s.Title))
	return s, nil
}

// Close releases the ledger, the suspect index and the mansion in that order. The session is unusable afterwards.
func (s *Session) Close() {
	s.ledger.Release()
	s.suspects.Release()
	s.mansion.Release()
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, "session closed", slog.String("session", s.ID.String()))
}

// Play runs a complete session: exploration followed by the accusation.
func (s *Session) Play(ctx context.Context, in Input, out Narrator) (Verdict, error) {
	ctx = logging.WithAttrs(ctx, slog.String("session", s.ID.String()))
	out.Narrate(ctx, Event{Kind: Welcome, Title: s.Title, Intro: s.intro})
	if err := s.Explore(ctx, in, out); err != nil {
		return Verdict{}, errors.Wrap(err, "explore")
	}
	v, err := s.Decide(ctx, in, out)
	if err != nil {
		return v, errors.Wrap(err, "decide")
	}
	out.Narrate(ctx, Event{Kind: Farewell})
	return v, nil
}

// Current returns the name of the room the player is in.
func (s *Session) Current() string {
	return s.mansion.Name(s.current)
}

// Collected returns the collected clues in alphabetical order.
func (s *Session) Collected() []string {
	return slices.Collect(s.ledger.All())
}

// Threshold returns how many matching clues sustain an accusation.
func (s *Session) Threshold() int {
	return s.threshold
}

// Visited returns how many distinct rooms the player has entered.
func (s *Session) Visited() int {
	return s.visited.Size()
}
