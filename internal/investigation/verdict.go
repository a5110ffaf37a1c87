package investigation

import (
	"context"
	"github.com/myrjola/detectivequest/internal/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
)

type Status int

const (
	// VerdictInsufficient means no clue was collected so no accusation was made.
	VerdictInsufficient Status = iota
	// VerdictAborted means the accusation could not be read.
	VerdictAborted
	VerdictSustained
	VerdictWeak
)

func (s Status) String() string {
	switch s {
	case VerdictInsufficient:
		return "insufficient_evidence"
	case VerdictAborted:
		return "aborted"
	case VerdictSustained:
		return "sustained"
	case VerdictWeak:
		return "weak"
	}
	return "unknown"
}

// Verdict is the outcome of an accusation.
type Verdict struct {
	Status    Status
	Accused   string
	Matches   int
	Threshold int
	// Clues are the collected clues in alphabetical order.
	Clues []string
}

// Evaluate judges an accusation against the collected clues. The accused name is compared exactly, case included.
func (s *Session) Evaluate(accused string) Verdict {
	v := Verdict{
		Status:    VerdictInsufficient,
		Accused:   accused,
		Matches:   0,
		Threshold: s.threshold,
		Clues:     s.Collected(),
	}
	if s.ledger.Empty() {
		return v
	}
	v.Matches = s.ledger.CountMatching(s.suspects, accused)
	if v.Matches >= s.threshold {
		v.Status = VerdictSustained
	} else {
		v.Status = VerdictWeak
	}
	return v
}

// Decide lists the collected clues, asks for one accusation and renders the verdict.
//
// Without clues no accusation is requested. When the accusation cannot be read the verdict is aborted. An error is
// returned only when ctx is cancelled while waiting for the accusation.
func (s *Session) Decide(ctx context.Context, in Input, out Narrator) (Verdict, error) {
	ctx, span := s.tracer.Start(ctx, "investigation.decide",
		trace.WithAttributes(attribute.String("session.id", s.ID.String())))
	defer span.End()

	if s.ledger.Empty() {
		out.Narrate(ctx, Event{Kind: InsufficientEvidence})
		span.SetAttributes(attribute.String("verdict", VerdictInsufficient.String()))
		return Verdict{Status: VerdictInsufficient, Accused: "", Matches: 0, Threshold: s.threshold, Clues: nil}, nil
	}

	collected := s.Collected()
	out.Narrate(ctx, Event{Kind: ClueListing, Clues: collected})
	out.Narrate(ctx, Event{Kind: AccusationPrompt})
	line, err := in.ReadLine(ctx)
	if err != nil {
		aborted := Verdict{Status: VerdictAborted, Accused: "", Matches: 0, Threshold: s.threshold, Clues: collected}
		span.SetAttributes(attribute.String("verdict", VerdictAborted.String()))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return aborted, errors.Wrap(ctxErr, "read accusation")
		}
		s.logger.LogAttrs(ctx, slog.LevelWarn, "could not read accusation", errors.SlogError(err))
		out.Narrate(ctx, Event{Kind: ReadFailure})
		return aborted, nil
	}

	v := s.Evaluate(line)
	out.Narrate(ctx, Event{Kind: MatchCount, Verdict: v})
	out.Narrate(ctx, Event{Kind: VerdictRendered, Verdict: v})
	s.logger.LogAttrs(ctx, slog.LevelDebug, "verdict computed",
		slog.String("accused", v.Accused), slog.Int("matches", v.Matches), slog.String("status", v.Status.String()))
	span.SetAttributes(
		attribute.String("accused", v.Accused),
		attribute.Int("matches", v.Matches),
		attribute.String("verdict", v.Status.String()),
	)
	return v, nil
}
