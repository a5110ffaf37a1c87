package repositories

import (
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/models"
	"github.com/myrjola/detectivequest/internal/sqlite"
	"log/slog"
	"time"
)

// DefaultListLimit caps List when no positive limit is given.
const DefaultListLimit = 20

type VerdictRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewVerdictRepository(dbs *sqlite.Database, logger *slog.Logger) *VerdictRepository {
	return &VerdictRepository{
		dbs:    dbs,
		logger: logger.With("source", "VerdictRepository"),
	}
}

// Record stores the verdict together with its clues and returns the new verdict ID.
//
// A zero CreatedAt is set to the current time.
func (r *VerdictRepository) Record(ctx context.Context, verdict models.Verdict) (int64, error) {
	var (
		tx     *sqlx.Tx
		result sql.Result
		id     int64
		err    error
	)
	if verdict.CreatedAt.IsZero() {
		verdict.CreatedAt = time.Now().UTC()
	}

	if tx, err = r.dbs.ReadWrite.BeginTxx(ctx, nil); err != nil {
		return 0, errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "could not rollback", errors.SlogError(rollbackErr))
		}
	}()

	stmt := `INSERT INTO verdicts (session_id, case_title, accused, matches, threshold, status, created_at)
VALUES (:session_id, :case_title, :accused, :matches, :threshold, :status, :created_at)`
	if result, err = tx.NamedExecContext(ctx, stmt, verdict); err != nil {
		return 0, errors.Wrap(err, "insert verdict", slog.String("session_id", verdict.SessionID))
	}
	if id, err = result.LastInsertId(); err != nil {
		return 0, errors.Wrap(err, "read verdict id")
	}
	for _, clue := range verdict.Clues {
		if _, err = tx.ExecContext(ctx, `INSERT INTO verdict_clues (verdict_id, clue) VALUES (?, ?)`,
			id, clue); err != nil {
			return 0, errors.Wrap(err, "insert verdict clue", slog.String("clue", clue))
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit verdict")
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "recorded verdict",
		slog.Int64("id", id), slog.String("status", string(verdict.Status)))
	return id, nil
}

// List returns up to limit verdicts, newest first. Non-positive limits use DefaultListLimit.
func (r *VerdictRepository) List(ctx context.Context, limit int) ([]models.Verdict, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var (
		verdicts []models.Verdict
		err      error
	)
	stmt := `SELECT id, session_id, case_title, accused, matches, threshold, status, created_at
FROM verdicts
ORDER BY created_at DESC, id DESC
LIMIT ?`
	if err = r.dbs.ReadOnly.SelectContext(ctx, &verdicts, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "select verdicts")
	}
	if len(verdicts) == 0 {
		return verdicts, nil
	}

	ids := make([]int64, len(verdicts))
	byID := make(map[int64]int, len(verdicts))
	for i, v := range verdicts {
		ids[i] = v.ID
		byID[v.ID] = i
	}
	var (
		query string
		args  []any
		clues []struct {
			VerdictID int64  `db:"verdict_id"`
			Clue      string `db:"clue"`
		}
	)
	if query, args, err = sqlx.In(`SELECT verdict_id, clue
FROM verdict_clues
WHERE verdict_id IN (?)
ORDER BY verdict_id, clue`, ids); err != nil {
		return nil, errors.Wrap(err, "expand verdict ids")
	}
	if err = r.dbs.ReadOnly.SelectContext(ctx, &clues, r.dbs.ReadOnly.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "select verdict clues")
	}
	for _, c := range clues {
		i := byID[c.VerdictID]
		verdicts[i].Clues = append(verdicts[i].Clues, c.Clue)
	}
	return verdicts, nil
}
