package ledger_test

import (
	"github.com/myrjola/detectivequest/internal/ledger"
	"github.com/myrjola/detectivequest/internal/suspects"
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
)

var manorClues = []string{
	"pegada de bota molhada",
	"fio de seda vermelho",
	"marca de copo com monograma",
	"lâmina com resquício de sangue",
	"brinco de pérola quebrado",
	"bilhete rasgado com iniciais C.R.",
	"sementes pisoteadas",
}

func TestLedger_Insert(t *testing.T) {
	l := ledger.New()
	require.True(t, l.Empty())

	require.Equal(t, ledger.Ignored, l.Insert(""))
	require.True(t, l.Empty(), "empty clues are never stored")

	require.Equal(t, ledger.Collected, l.Insert("fio de seda vermelho"))
	require.Equal(t, ledger.Collected, l.Insert("bilhete rasgado com iniciais C.R."))
	require.Equal(t, ledger.Collected, l.Insert("sementes pisoteadas"))
	require.Equal(t, ledger.Duplicate, l.Insert("fio de seda vermelho"))
	require.Equal(t, ledger.Duplicate, l.Insert("sementes pisoteadas"))
	require.Equal(t, 3, l.Len())
	require.False(t, l.Empty())

	require.True(t, l.Contains("bilhete rasgado com iniciais C.R."))
	require.False(t, l.Contains("Fio de seda vermelho"))
	require.False(t, l.Contains(""))
}

func TestLedger_Uniqueness(t *testing.T) {
	orders := [][]string{
		manorClues,
		slices.Concat(manorClues, manorClues),
		{"b", "a", "b", "c", "a", "c", "c"},
		{"z", "y", "x", "w", "x", "y", "z"},
	}
	for _, inserts := range orders {
		l := ledger.New()
		distinct := map[string]bool{}
		for _, clue := range inserts {
			outcome := l.Insert(clue)
			if distinct[clue] {
				require.Equal(t, ledger.Duplicate, outcome)
			} else {
				require.Equal(t, ledger.Collected, outcome)
			}
			distinct[clue] = true
		}
		require.Equal(t, len(distinct), l.Len())
		got := slices.Collect(l.All())
		require.Len(t, got, len(distinct))
		for clue := range distinct {
			require.True(t, l.Contains(clue))
		}
	}
}

func TestLedger_All(t *testing.T) {
	l := ledger.New()
	require.Empty(t, slices.Collect(l.All()))

	for _, clue := range manorClues {
		l.Insert(clue)
	}

	want := []string{
		"bilhete rasgado com iniciais C.R.",
		"brinco de pérola quebrado",
		"fio de seda vermelho",
		"lâmina com resquício de sangue",
		"marca de copo com monograma",
		"pegada de bota molhada",
		"sementes pisoteadas",
	}
	first := slices.Collect(l.All())
	require.Equal(t, want, first)
	require.True(t, slices.IsSorted(first))

	// Enumerating again yields the same sequence and leaves the ledger untouched.
	require.Equal(t, first, slices.Collect(l.All()))
	require.Equal(t, len(want), l.Len())

	// Stopping early is honoured.
	var taken []string
	for clue := range l.All() {
		taken = append(taken, clue)
		if len(taken) == 2 {
			break
		}
	}
	require.Equal(t, want[:2], taken)
}

func TestLedger_CountMatching(t *testing.T) {
	ix := suspects.NewIndex(suspects.DefaultBuckets)
	ix.Insert("pegada de bota molhada", "Joao")
	ix.Insert("fio de seda vermelho", "Maria")
	ix.Insert("marca de copo com monograma", "Carlos")
	ix.Insert("lâmina com resquício de sangue", "Carlos")
	ix.Insert("brinco de pérola quebrado", "Maria")
	ix.Insert("bilhete rasgado com iniciais C.R.", "Carlos")
	ix.Insert("sementes pisoteadas", "Joao")

	l := ledger.New()
	for _, clue := range manorClues {
		l.Insert(clue)
	}
	l.Insert("uma pista sem suspeito")

	tests := []struct {
		suspect string
		want    int
	}{
		{suspect: "Carlos", want: 3},
		{suspect: "Maria", want: 2},
		{suspect: "Joao", want: 2},
		{suspect: "joao", want: 0},
		{suspect: "Carlos ", want: 0},
		{suspect: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.suspect, func(t *testing.T) {
			require.Equal(t, tt.want, l.CountMatching(ix, tt.suspect))

			// Equals the number of clues whose lookup matches.
			manual := 0
			for clue := range l.All() {
				if s, ok := ix.Lookup(clue); ok && s == tt.suspect {
					manual++
				}
			}
			require.Equal(t, manual, l.CountMatching(ix, tt.suspect))
		})
	}
}

func TestLedger_Release(t *testing.T) {
	l := ledger.New()
	for _, clue := range manorClues {
		l.Insert(clue)
	}
	l.Release()
	require.True(t, l.Empty())
	require.Zero(t, l.Len())
	require.False(t, l.Contains("sementes pisoteadas"))
	require.Empty(t, slices.Collect(l.All()))
}

func TestOutcome_String(t *testing.T) {
	require.Equal(t, "ignored", ledger.Ignored.String())
	require.Equal(t, "collected", ledger.Collected.String())
	require.Equal(t, "duplicate", ledger.Duplicate.String())
}
