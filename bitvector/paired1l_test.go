package bitvector

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfbitvectors/pfbitvectors/ranges"
)

func TestPairedBitvector1LSmallVectorRankAndSymbol(t *testing.T) {
	bv, err := NewPairedBitvector1L(64, ranges.Bools{true, false, true, false})
	require.NoError(t, err)

	assert.EqualValues(t, 4, bv.Size())
	assert.EqualValues(t, 0, bv.Rank(0))
	assert.EqualValues(t, 1, bv.Rank(1))
	assert.EqualValues(t, 1, bv.Rank(2))
	assert.EqualValues(t, 2, bv.Rank(3))
	assert.EqualValues(t, 2, bv.Rank(4))
	assert.False(t, bv.Symbol(3))
}

// TestPairedBitvector1LAgreesWithBitvector1L checks the paired-vs-plain
// equivalence invariant: both layouts must answer every rank and symbol
// query identically for the same bits, regardless of which block a query
// falls in relative to its pair.
func TestPairedBitvector1LAgreesWithBitvector1L(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	for _, n := range []int{0, 1, 63, 64, 65, 127, 128, 129, 4000} {
		bits := make([]bool, n)
		for i := range bits {
			bits[i] = rng.Intn(2) == 1
		}
		plain, err := NewBitvector1L(64, ranges.Bools(bits))
		require.NoError(t, err)
		paired, err := NewPairedBitvector1L(64, ranges.Bools(bits))
		require.NoError(t, err)

		assert.Equal(t, plain.Size(), paired.Size(), "n=%d", n)
		for i := 0; i <= n; i++ {
			assert.Equal(t, plain.Rank(uint64(i)), paired.Rank(uint64(i)), "n=%d i=%d", n, i)
		}
		for i := 0; i < n; i++ {
			assert.Equal(t, plain.Symbol(uint64(i)), paired.Symbol(uint64(i)), "n=%d i=%d", n, i)
		}
	}
}

func TestPairedBitvector1LPushBackMatchesBatchConstruction(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	bits := make([]bool, 1900)
	for i := range bits {
		bits[i] = rng.Intn(2) == 1
	}

	batch, err := NewPairedBitvector1L(64, ranges.Bools(bits))
	require.NoError(t, err)

	built, err := NewPairedBitvector1L(64, ranges.Bools{})
	require.NoError(t, err)
	for _, b := range bits {
		built.PushBack(b)
	}

	assert.Equal(t, batch.Size(), built.Size())
	for i := 0; i <= len(bits); i++ {
		assert.Equal(t, batch.Rank(uint64(i)), built.Rank(uint64(i)), "rank mismatch at i=%d", i)
	}
	for i := range bits {
		assert.Equal(t, batch.Symbol(uint64(i)), built.Symbol(uint64(i)), "symbol mismatch at i=%d", i)
	}
}

func TestPairedBitvector1LSaveLoadRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	bits := make([]bool, 2600)
	for i := range bits {
		bits[i] = rng.Intn(2) == 1
	}
	bv, err := NewPairedBitvector1L(128, ranges.Bools(bits))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bv.Save(&buf))

	loaded, err := LoadPairedBitvector1L(128, &buf)
	require.NoError(t, err)

	assert.Equal(t, bv.Size(), loaded.Size())
	for i := 0; i <= len(bits); i++ {
		assert.Equal(t, bv.Rank(uint64(i)), loaded.Rank(uint64(i)))
	}
}
