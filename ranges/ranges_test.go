package ranges

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackBoolsFromBools(t *testing.T) {
	src := Bools{true, false, true, false, true, true, true, true, true}
	words := PackBools(src)
	assert.Equal(t, []uint64{0b111110101}, words)
}

func TestPackBoolsFromPackedWords(t *testing.T) {
	src := PackedWords{Words: []uint64{0xFF, 0x1}, N: 65}
	words := PackBools(src)
	assert.Equal(t, []uint64{0xFF, 0x1}, words)
}

func TestPadWords(t *testing.T) {
	words := []uint64{0xFF}
	padded := PadWords(words, 2, 1)
	assert.Equal(t, []uint64{0xFF, 0}, padded)

	exact := PadWords([]uint64{1, 2}, 2, 1)
	assert.Equal(t, []uint64{1, 2}, exact)
}

func TestPlaneBoolSeq(t *testing.T) {
	syms := Symbols{0, 1, 2, 1, 0, 1, 2, 1, 2}
	plane0 := PlaneBoolSeq{Src: syms, Plane: 0}
	plane1 := PlaneBoolSeq{Src: syms, Plane: 1}

	assert.Equal(t, 9, plane0.Len())
	for i, want := range []bool{false, true, false, true, false, true, false, true, false} {
		assert.Equal(t, want, plane0.At(i), "plane0 bit %d", i)
	}
	for i, want := range []bool{false, false, true, false, false, false, true, false, true} {
		assert.Equal(t, want, plane1.At(i), "plane1 bit %d", i)
	}
}

func TestBytesSymbolSeq(t *testing.T) {
	b := Bytes("Hallo")
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, uint32('H'), b.At(0))
}
