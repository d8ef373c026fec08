package bitops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopCountWords(t *testing.T) {
	assert.Equal(t, uint64(0), PopCountWords([]uint64{0, 0}))
	assert.Equal(t, uint64(64), PopCountWords([]uint64{^uint64(0)}))
	assert.Equal(t, uint64(65), PopCountWords([]uint64{^uint64(0), 1}))
}

func TestPrefixPopCount(t *testing.T) {
	words := []uint64{0b1011, 0}
	require.Equal(t, uint64(0), PrefixPopCount(words, 0))
	assert.Equal(t, uint64(1), PrefixPopCount(words, 1))
	assert.Equal(t, uint64(2), PrefixPopCount(words, 2))
	assert.Equal(t, uint64(2), PrefixPopCount(words, 3))
	assert.Equal(t, uint64(3), PrefixPopCount(words, 4))
	assert.Equal(t, uint64(3), PrefixPopCount(words, 64))

	words2 := []uint64{^uint64(0), 0b1}
	assert.Equal(t, uint64(64), PrefixPopCount(words2, 64))
	assert.Equal(t, uint64(65), PrefixPopCount(words2, 65))
}

func TestSkippedPopCount(t *testing.T) {
	// width-8 block holding bits 1,0,1,1,0,0,0,0 (bit0=1,bit1=0,bit2=1,bit3=1)
	words := []uint64{0b1101}
	total := PopCountWords(words)
	require.Equal(t, uint64(3), total)

	assert.Equal(t, total, SkippedPopCount(words, 8, 0), "skip 0 counts everything")
	assert.Equal(t, uint64(0), SkippedPopCount(words, 8, 8), "skip all counts nothing")
	assert.Equal(t, total, SkippedPopCount(words, 8, 16), "skip 2*width counts everything")

	// skip first 1 bit (bit0), count bits[1,8) = 0,1,1,0,0,0,0 -> 2 ones
	assert.Equal(t, uint64(2), SkippedPopCount(words, 8, 1))

	// keep-first region: skip=width+k counts first k bits
	assert.Equal(t, uint64(1), SkippedPopCount(words, 8, 9)) // first 1 bit: bit0=1
	assert.Equal(t, uint64(1), SkippedPopCount(words, 8, 10)) // first 2 bits: 1,0 -> 1
	assert.Equal(t, uint64(2), SkippedPopCount(words, 8, 11)) // first 3 bits: 1,0,1 -> 2
	assert.Equal(t, total, SkippedPopCount(words, 8, 16))
}
