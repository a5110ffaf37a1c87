package models

import "time"

type VerdictStatus string

const (
	VerdictStatusInsufficientEvidence VerdictStatus = "insufficient_evidence"
	VerdictStatusAborted              VerdictStatus = "aborted"
	VerdictStatusSustained            VerdictStatus = "sustained"
	VerdictStatusWeak                 VerdictStatus = "weak"
)

// Verdict is the journal entry of a finished investigation session. Sessions are never resumed from it.
type Verdict struct {
	ID        int64         `db:"id"`
	SessionID string        `db:"session_id"`
	CaseTitle string        `db:"case_title"`
	Accused   string        `db:"accused"`
	Matches   int           `db:"matches"`
	Threshold int           `db:"threshold"`
	Status    VerdictStatus `db:"status"`
	CreatedAt time.Time     `db:"created_at"`
	// Clues are the collected clues in alphabetical order.
	Clues []string `db:"-"`
}
