package investigation

import (
	"context"
	"github.com/myrjola/detectivequest/internal/mansion"
)

// EventKind tells which notice an Event carries.
type EventKind int

const (
	Welcome EventKind = iota
	ExplorationStarted
	EnteredRoom
	ClueFound
	ClueCollected
	ClueAlreadyHeld
	NoClue
	CommandPrompt
	NoRoom
	InvalidCommand
	ExplorationStopped
	ExplorationEnded
	InsufficientEvidence
	ClueListing
	AccusationPrompt
	ReadFailure
	MatchCount
	VerdictRendered
	Farewell
)

var eventKindNames = [...]string{
	Welcome:              "welcome",
	ExplorationStarted:   "exploration_started",
	EnteredRoom:          "entered_room",
	ClueFound:            "clue_found",
	ClueCollected:        "clue_collected",
	ClueAlreadyHeld:      "clue_already_held",
	NoClue:               "no_clue",
	CommandPrompt:        "command_prompt",
	NoRoom:               "no_room",
	InvalidCommand:       "invalid_command",
	ExplorationStopped:   "exploration_stopped",
	ExplorationEnded:     "exploration_ended",
	InsufficientEvidence: "insufficient_evidence",
	ClueListing:          "clue_listing",
	AccusationPrompt:     "accusation_prompt",
	ReadFailure:          "read_failure",
	MatchCount:           "match_count",
	VerdictRendered:      "verdict_rendered",
	Farewell:             "farewell",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event is a player-facing notice. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind
	// Title and Intro are set for Welcome.
	Title string
	Intro string
	// Room is set for EnteredRoom and NoRoom.
	Room string
	// Clue is set for ClueFound, ClueCollected and ClueAlreadyHeld.
	Clue string
	// Direction is set for NoRoom.
	Direction mansion.Direction
	// Clues is the alphabetical listing of ClueListing.
	Clues []string
	// Visited counts the distinct rooms seen, set for ExplorationEnded.
	Visited int
	// Verdict is set for MatchCount and VerdictRendered.
	Verdict Verdict
}

// Narrator presents events to the player.
type Narrator interface {
	Narrate(ctx context.Context, e Event)
}

// Input supplies player lines. Implementations strip the line terminator. An error means no more input is available.
type Input interface {
	ReadLine(ctx context.Context) (string, error)
}
