package suspects_test

import (
	"github.com/myrjola/detectivequest/internal/suspects"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{in: "", want: 5381},
		{in: "a", want: 177670},
		{in: "ab", want: 5863208},
		{in: "pegada de bota molhada", want: 10656227349636996012},
		{in: "lâmina com resquício de sangue", want: 15151731291513921537},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, suspects.Hash(tt.in))
		})
	}
}

func TestIndex_Lookup(t *testing.T) {
	ix := suspects.NewIndex(0)
	require.Equal(t, suspects.DefaultBuckets, ix.Buckets())

	ix.Insert("pegada de bota molhada", "Joao")
	ix.Insert("fio de seda vermelho", "Maria")
	ix.Insert("brinco de pérola quebrado", "Maria")

	suspect, ok := ix.Lookup("pegada de bota molhada")
	require.True(t, ok)
	require.Equal(t, "Joao", suspect)

	_, ok = ix.Lookup("Pegada de bota molhada")
	require.False(t, ok, "lookups are case-sensitive")
	_, ok = ix.Lookup("pegada de bota")
	require.False(t, ok, "lookups never match partially")
}

func TestIndex_Chaining(t *testing.T) {
	ix := suspects.NewIndex(suspects.DefaultBuckets)
	// Both clues hash to bucket 30 of 31.
	require.Equal(t, 30, ix.BucketOf("fio de seda vermelho"))
	require.Equal(t, 30, ix.BucketOf("brinco de pérola quebrado"))

	ix.Insert("fio de seda vermelho", "Maria")
	ix.Insert("brinco de pérola quebrado", "Ana")
	require.Equal(t, 2, ix.ChainLen(30))
	require.Zero(t, ix.ChainLen(-1))
	require.Zero(t, ix.ChainLen(suspects.DefaultBuckets))

	suspect, ok := ix.Lookup("fio de seda vermelho")
	require.True(t, ok)
	require.Equal(t, "Maria", suspect)
	suspect, ok = ix.Lookup("brinco de pérola quebrado")
	require.True(t, ok)
	require.Equal(t, "Ana", suspect)
}

func TestIndex_ShadowOnDuplicateInsert(t *testing.T) {
	ix := suspects.NewIndex(suspects.DefaultBuckets)
	ix.Insert("marca de copo com monograma", "Carlos")
	require.Equal(t, 1, ix.Len())

	ix.Insert("marca de copo com monograma", "Maria")
	require.Equal(t, 2, ix.Len(), "the older entry is kept")
	require.Equal(t, 2, ix.ChainLen(ix.BucketOf("marca de copo com monograma")))

	suspect, ok := ix.Lookup("marca de copo com monograma")
	require.True(t, ok)
	require.Equal(t, "Maria", suspect, "the newest entry wins")

	require.Equal(t, []string{"Maria"}, ix.Suspects(), "shadowed suspects are unreachable")
}

func TestIndex_Suspects(t *testing.T) {
	ix := suspects.NewIndex(suspects.DefaultBuckets)
	require.Empty(t, ix.Suspects())
	ix.Insert("pegada de bota molhada", "Joao")
	ix.Insert("fio de seda vermelho", "Maria")
	ix.Insert("marca de copo com monograma", "Carlos")
	ix.Insert("sementes pisoteadas", "Joao")
	require.Equal(t, []string{"Carlos", "Joao", "Maria"}, ix.Suspects())
}

func TestIndex_Release(t *testing.T) {
	ix := suspects.NewIndex(7)
	ix.Insert("pegada de bota molhada", "Joao")
	ix.Insert("sementes pisoteadas", "Joao")
	ix.Release()

	require.Equal(t, 0, ix.Len())
	require.Equal(t, 7, ix.Buckets())
	for b := range ix.Buckets() {
		require.Zero(t, ix.ChainLen(b))
	}
	_, ok := ix.Lookup("pegada de bota molhada")
	require.False(t, ok)
}
