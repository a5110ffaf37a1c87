package investigation

import (
	"context"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/ledger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
)

// Explore walks the mansion under player commands starting from the root room.
//
// The loop ends when the player stops or when input runs out. A cancelled context ends it with the context error.
func (s *Session) Explore(ctx context.Context, in Input, out Narrator) error {
	ctx, span := s.tracer.Start(ctx, "investigation.explore",
		trace.WithAttributes(attribute.String("session.id", s.ID.String())))
	defer span.End()

	out.Narrate(ctx, Event{Kind: ExplorationStarted})
	s.current = s.mansion.Root()
	s.enter(ctx, out)

loop:
	for {
		out.Narrate(ctx, Event{Kind: CommandPrompt})
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "cancelled")
			return errors.Wrap(err, "await command")
		}
		line, err := in.ReadLine(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				span.SetStatus(codes.Error, "cancelled")
				return errors.Wrap(ctxErr, "read command")
			}
			s.logger.LogAttrs(ctx, slog.LevelDebug, "input exhausted, stopping exploration", errors.SlogError(err))
			break
		}
		s.steps++

		cmd := ParseCommand(line)
		switch cmd {
		case Stop:
			out.Narrate(ctx, Event{Kind: ExplorationStopped})
			break loop
		case Left, Right:
			dir, _ := cmd.direction()
			next, ok := s.mansion.Step(s.current, dir)
			if !ok {
				out.Narrate(ctx, Event{Kind: NoRoom, Room: s.Current(), Direction: dir})
				continue
			}
			s.current = next
			s.enter(ctx, out)
		case Invalid:
			s.logger.LogAttrs(ctx, slog.LevelDebug, "invalid command", slog.String("line", line))
			out.Narrate(ctx, Event{Kind: InvalidCommand})
		}
	}

	out.Narrate(ctx, Event{Kind: ExplorationEnded, Visited: s.visited.Size()})
	span.SetAttributes(
		attribute.Int("steps", s.steps),
		attribute.Int("rooms.visited", s.visited.Size()),
		attribute.Int("clues.collected", s.ledger.Len()),
	)
	return nil
}

// enter announces the current room and collects its clue if the ledger does not hold it yet.
func (s *Session) enter(ctx context.Context, out Narrator) {
	name := s.Current()
	s.visited.Put(name)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "entered room", slog.String("room", name))
	out.Narrate(ctx, Event{Kind: EnteredRoom, Room: name})

	clue, ok := s.rules.ClueFor(name)
	if !ok {
		out.Narrate(ctx, Event{Kind: NoClue, Room: name})
		return
	}
	out.Narrate(ctx, Event{Kind: ClueFound, Room: name, Clue: clue})
	if s.ledger.Contains(clue) {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "clue already held", slog.String("clue", clue))
		out.Narrate(ctx, Event{Kind: ClueAlreadyHeld, Room: name, Clue: clue})
		return
	}
	if s.ledger.Insert(clue) == ledger.Collected {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "clue collected", slog.String("clue", clue))
		out.Narrate(ctx, Event{Kind: ClueCollected, Room: name, Clue: clue})
	}
}
