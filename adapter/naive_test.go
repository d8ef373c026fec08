package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaiveBitvectorRank(t *testing.T) {
	nb := NewNaiveBitvector([]bool{true, false, true, true, false, true})
	assert.EqualValues(t, 0, nb.Rank(0))
	assert.EqualValues(t, 1, nb.Rank(1))
	assert.EqualValues(t, 2, nb.Rank(3))
	assert.EqualValues(t, 4, nb.Rank(6))
	assert.True(t, nb.Symbol(2))
	assert.False(t, nb.Symbol(4))
}

func TestNaiveBitvectorPushBack(t *testing.T) {
	nb := NewNaiveBitvector(nil)
	nb.PushBack(true)
	nb.PushBack(false)
	nb.PushBack(true)
	assert.EqualValues(t, 3, nb.Size())
	assert.EqualValues(t, 2, nb.Rank(3))
}

func TestNaiveSigmaStringRankAndPrefixRank(t *testing.T) {
	ns := NewNaiveSigmaString([]uint32{0, 1, 2, 1, 0, 1, 2, 1, 2})
	assert.EqualValues(t, 2, ns.Rank(9, 0))
	assert.EqualValues(t, 4, ns.Rank(9, 1))
	assert.EqualValues(t, 3, ns.Rank(9, 2))
	assert.EqualValues(t, 0, ns.PrefixRank(9, 0))
	assert.EqualValues(t, 2, ns.PrefixRank(9, 1))
	assert.EqualValues(t, 6, ns.PrefixRank(9, 2))
}

func TestNaiveSigmaStringAllRanksAndPrefixRanks(t *testing.T) {
	ns := NewNaiveSigmaString([]uint32{0, 1, 2, 1, 0, 1, 2, 1, 2})
	ranks, prefix := ns.AllRanksAndPrefixRanks(9)
	assert.Equal(t, []uint64{2, 4, 3}, ranks)
	assert.Equal(t, []uint64{0, 2, 6}, prefix)
}
