package repositories_test

import (
	"github.com/myrjola/detectivequest/internal/models"
	"github.com/myrjola/detectivequest/internal/repositories"
	"github.com/myrjola/detectivequest/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
	"time"
)

func TestVerdictRepository(t *testing.T) {
	ctx := t.Context()
	repo := repositories.NewVerdictRepository(newTestDB(t), testhelpers.NewLogger(io.Discard))

	verdicts, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, verdicts)

	base := time.Date(2026, time.October, 18, 20, 0, 0, 0, time.UTC)
	records := []models.Verdict{
		{
			SessionID: "first",
			CaseTitle: "Detective Quest (Capítulo Final)",
			Accused:   "Maria",
			Matches:   1,
			Threshold: 2,
			Status:    models.VerdictStatusWeak,
			CreatedAt: base,
			Clues:     []string{"bilhete rasgado com iniciais C.R.", "fio de seda vermelho", "pegada de bota molhada"},
		},
		{
			SessionID: "second",
			CaseTitle: "Detective Quest (Capítulo Final)",
			Accused:   "",
			Matches:   0,
			Threshold: 2,
			Status:    models.VerdictStatusInsufficientEvidence,
			CreatedAt: base.Add(time.Minute),
			Clues:     nil,
		},
		{
			SessionID: "third",
			CaseTitle: "Detective Quest (Capítulo Final)",
			Accused:   "Joao",
			Matches:   2,
			Threshold: 2,
			Status:    models.VerdictStatusSustained,
			CreatedAt: base.Add(2 * time.Minute),
			Clues:     []string{"marca de copo com monograma", "pegada de bota molhada", "sementes pisoteadas"},
		},
	}
	for _, rec := range records {
		id, err := repo.Record(ctx, rec)
		require.NoError(t, err)
		require.Positive(t, id)
	}

	verdicts, err = repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, verdicts, 3)

	want := []models.Verdict{records[2], records[1], records[0]}
	for i, got := range verdicts {
		require.Equal(t, want[i].SessionID, got.SessionID)
		require.Equal(t, want[i].Accused, got.Accused)
		require.Equal(t, want[i].Matches, got.Matches)
		require.Equal(t, want[i].Threshold, got.Threshold)
		require.Equal(t, want[i].Status, got.Status)
		require.Equal(t, want[i].Clues, got.Clues)
		require.WithinDuration(t, want[i].CreatedAt, got.CreatedAt, time.Second)
	}

	verdicts, err = repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	require.Equal(t, "third", verdicts[0].SessionID)
}

func TestVerdictRepository_Record(t *testing.T) {
	tests := []struct {
		name    string
		verdict models.Verdict
		wantErr bool
	}{
		{
			name: "created at defaults to now",
			verdict: models.Verdict{
				SessionID: "now",
				CaseTitle: "Cabana",
				Accused:   "Ana",
				Matches:   0,
				Threshold: 1,
				Status:    models.VerdictStatusWeak,
			},
			wantErr: false,
		},
		{
			name: "unknown status",
			verdict: models.Verdict{
				SessionID: "bad-status",
				CaseTitle: "Cabana",
				Threshold: 1,
				Status:    "guilty",
			},
			wantErr: true,
		},
		{
			name: "duplicate clues are rejected",
			verdict: models.Verdict{
				SessionID: "duplicate-clues",
				CaseTitle: "Cabana",
				Threshold: 1,
				Status:    models.VerdictStatusAborted,
				Clues:     []string{"cinzas", "cinzas"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			repo := repositories.NewVerdictRepository(newTestDB(t), testhelpers.NewLogger(io.Discard))
			_, err := repo.Record(ctx, tt.verdict)
			verdicts, listErr := repo.List(ctx, 0)
			require.NoError(t, listErr)
			if tt.wantErr {
				require.Error(t, err)
				require.Empty(t, verdicts, "failed records leave nothing behind")
				return
			}
			require.NoError(t, err)
			require.Len(t, verdicts, 1)
			require.WithinDuration(t, time.Now(), verdicts[0].CreatedAt, time.Minute)
		})
	}
}

func TestVerdictRepository_DuplicateSession(t *testing.T) {
	ctx := t.Context()
	repo := repositories.NewVerdictRepository(newTestDB(t), testhelpers.NewLogger(io.Discard))
	v := models.Verdict{SessionID: "same", CaseTitle: "Cabana", Threshold: 1, Status: models.VerdictStatusWeak}
	_, err := repo.Record(ctx, v)
	require.NoError(t, err)
	_, err = repo.Record(ctx, v)
	require.Error(t, err)
}
