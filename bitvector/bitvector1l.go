package bitvector

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pfbitvectors/pfbitvectors/bitops"
	"github.com/pfbitvectors/pfbitvectors/ranges"
)

// Bitvector1L is the one-level bitvector: block-wise popcount, per-block
// cumulative counts, no superblock tier. Queries cost one table lookup
// plus one masked popcount over a single B-bit block.
type Bitvector1L struct {
	width       int      // B, bits per block
	words       []uint64 // flat, block-aligned word buffer
	l0          []uint64 // l0[k] = popcount of blocks [0,k); len == blocks+1
	totalLength uint64
}

// NewBitvector1L builds a Bitvector1L of the given block width from src.
// src may be a ranges.Bools wrapping a plain []bool, or a
// ranges.PackedWords wrapping already-packed 64-bit words.
func NewBitvector1L(width int, src ranges.BoolSeq) (*Bitvector1L, error) {
	if !bitops.IsValidBlockWidth(width) {
		return nil, newConstructionError("block width %d is not a supported size", width)
	}

	n := src.Len()
	wpb := bitops.WordsPerBlock(width)
	blocks := n/width + 1 // always keep one open block, even for n==0

	words := ranges.PadWords(ranges.PackBools(src), wpb, blocks)

	l0 := make([]uint64, blocks+1)
	var run uint64
	for k := 0; k < blocks; k++ {
		l0[k] = run
		run += bitops.PopCountWords(words[k*wpb : (k+1)*wpb])
	}
	l0[blocks] = run

	return &Bitvector1L{width: width, words: words, l0: l0, totalLength: uint64(n)}, nil
}

// Size returns the logical bit count.
func (bv *Bitvector1L) Size() uint64 { return bv.totalLength }

// Symbol returns bit i. Panics if i is out of range.
func (bv *Bitvector1L) Symbol(i uint64) bool {
	if i >= bv.totalLength {
		panic(fmt.Sprintf("bitvector: symbol index %d out of range [0,%d)", i, bv.totalLength))
	}
	wpb := bitops.WordsPerBlock(bv.width)
	blockIdx := int(i) / bv.width
	localBit := int(i) % bv.width
	wordIdx := blockIdx*wpb + localBit/64
	return bv.words[wordIdx]&(uint64(1)<<uint(localBit%64)) != 0
}

// Rank returns the number of set bits in [0,i). Panics if i > Size().
func (bv *Bitvector1L) Rank(i uint64) uint64 {
	if i > bv.totalLength {
		panic(fmt.Sprintf("bitvector: rank index %d exceeds size %d", i, bv.totalLength))
	}
	width := uint64(bv.width)
	blockIdx := i / width
	r := int(i % width)
	if r == 0 {
		return bv.l0[blockIdx]
	}
	wpb := bitops.WordsPerBlock(bv.width)
	blockWords := bv.words[int(blockIdx)*wpb : (int(blockIdx)+1)*wpb]
	return bv.l0[blockIdx] + bitops.PrefixPopCount(blockWords, r)
}

// PushBack appends one bit in amortised O(1), growing the word buffer
// and l0 table as block boundaries are crossed.
func (bv *Bitvector1L) PushBack(bit bool) {
	width := uint64(bv.width)
	wpb := bitops.WordsPerBlock(bv.width)
	blockIdx := int(bv.totalLength / width)
	localBit := int(bv.totalLength % width)

	if needed := (blockIdx + 1) * wpb; len(bv.words) < needed {
		bv.words = append(bv.words, make([]uint64, needed-len(bv.words))...)
	}
	if bit {
		wordIdx := blockIdx*wpb + localBit/64
		bv.words[wordIdx] |= uint64(1) << uint(localBit%64)
	}
	if blockIdx+1 >= len(bv.l0) {
		bv.l0 = append(bv.l0, bv.l0[len(bv.l0)-1])
	}
	if bit {
		bv.l0[blockIdx+1]++
	}
	bv.totalLength++
}

// Save writes bv as totalLength, then l0 (length-prefixed 8-byte
// entries, unbounded since a one-level structure never resets its
// cumulative counter), then the block words.
func (bv *Bitvector1L) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, bv.totalLength); err != nil {
		return err
	}
	if err := writeUint64Slice(w, bv.l0); err != nil {
		return err
	}
	return writeUint64Slice(w, bv.words)
}

// LoadBitvector1L reconstructs a Bitvector1L previously written by Save. width must
// match the width used to build the saved archive.
func LoadBitvector1L(width int, r io.Reader) (*Bitvector1L, error) {
	if !bitops.IsValidBlockWidth(width) {
		return nil, newConstructionError("block width %d is not a supported size", width)
	}
	var totalLength uint64
	if err := binary.Read(r, binary.LittleEndian, &totalLength); err != nil {
		return nil, newArchiveError("reading totalLength", err)
	}
	l0, err := readUint64Slice(r)
	if err != nil {
		return nil, newArchiveError("reading l0", err)
	}
	words, err := readUint64Slice(r)
	if err != nil {
		return nil, newArchiveError("reading words", err)
	}
	wpb := bitops.WordsPerBlock(width)
	if expect := len(l0) - 1; expect < 0 || len(words) != expect*wpb {
		return nil, newArchiveError(fmt.Sprintf("l0/words length mismatch: l0=%d words=%d wpb=%d", len(l0), len(words), wpb), nil)
	}
	return &Bitvector1L{width: width, words: words, l0: l0, totalLength: totalLength}, nil
}
