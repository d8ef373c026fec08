package bitvector

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pfbitvectors/pfbitvectors/bitops"
	"github.com/pfbitvectors/pfbitvectors/ranges"
)

// PairedBitvector1L is the paired layout: blocks are grouped into pairs,
// and l0 holds one entry per pair, set at the pair's
// midpoint (the boundary between its left and right block). Rank within
// the left block is recovered by subtracting a tail popcount from the
// midpoint count; rank within the right block by adding a head popcount
// to it. This halves l0's footprint relative to Bitvector1L at the cost
// of one extra subtraction on half of all queries.
//
// Derived from the reference PairedBitvector1L rank formula:
// ct = l0[blockIdx/2] + ((blockIdx%2)*2-1) * skip_popcount(block, bitOffset).
type PairedBitvector1L struct {
	width       int
	words       []uint64
	l0          []uint64 // l0[p] = popcount of bits [0,(2p+1)*width)
	totalLength uint64

	blockRun     uint64 // bits set so far in the currently open block
	runningTotal uint64 // cumulative popcount of every sealed block so far
}

// NewPairedBitvector1L builds a PairedBitvector1L of the given block
// width from src.
func NewPairedBitvector1L(width int, src ranges.BoolSeq) (*PairedBitvector1L, error) {
	if !bitops.IsValidBlockWidth(width) {
		return nil, newConstructionError("block width %d is not a supported size", width)
	}

	n := src.Len()
	wpb := bitops.WordsPerBlock(width)
	numBlocksRaw := n/width + 1
	numPairs := (numBlocksRaw + 1) / 2
	numBlocks := numPairs * 2

	words := ranges.PadWords(ranges.PackBools(src), wpb, numBlocks)

	l0 := make([]uint64, numPairs)
	var running uint64
	for k := 0; k < numBlocks; k++ {
		running += bitops.PopCountWords(words[k*wpb : (k+1)*wpb])
		if k%2 == 0 {
			l0[k/2] = running
		}
	}

	return &PairedBitvector1L{width: width, words: words, l0: l0, totalLength: uint64(n)}, nil
}

func (bv *PairedBitvector1L) Size() uint64 { return bv.totalLength }

func (bv *PairedBitvector1L) Symbol(i uint64) bool {
	if i >= bv.totalLength {
		panic(fmt.Sprintf("bitvector: symbol index %d out of range [0,%d)", i, bv.totalLength))
	}
	wpb := bitops.WordsPerBlock(bv.width)
	blockIdx := int(i) / bv.width
	localBit := int(i) % bv.width
	wordIdx := blockIdx*wpb + localBit/64
	return bv.words[wordIdx]&(uint64(1)<<uint(localBit%64)) != 0
}

func (bv *PairedBitvector1L) Rank(i uint64) uint64 {
	if i > bv.totalLength {
		panic(fmt.Sprintf("bitvector: rank index %d exceeds size %d", i, bv.totalLength))
	}
	width := uint64(bv.width)
	blockIdx := i / width
	pairIdx := int(blockIdx / 2)
	r := int(i % width)
	wpb := bitops.WordsPerBlock(bv.width)
	blockWords := bv.words[int(blockIdx)*wpb : (int(blockIdx)+1)*wpb]

	if blockIdx%2 == 0 {
		if (blockIdx+1)*width > bv.totalLength {
			// Left block of the pair not yet fully determined (Building
			// state, still open): its l0 midpoint may be stale or absent,
			// so fall back to the previous pair's total plus a direct
			// prefix count over the real bits written so far.
			var prevTotal uint64
			if pairIdx > 0 {
				prevRight := bv.words[(int(blockIdx)-1)*wpb : int(blockIdx)*wpb]
				prevTotal = bv.l0[pairIdx-1] + bitops.PopCountWords(prevRight)
			}
			return prevTotal + bitops.PrefixPopCount(blockWords, r)
		}
		tail := bitops.PopCountWords(blockWords) - bitops.PrefixPopCount(blockWords, r)
		return bv.l0[pairIdx] - tail
	}
	head := bitops.PrefixPopCount(blockWords, r)
	return bv.l0[pairIdx] + head
}

// PushBack appends one bit, striking a new l0 entry each time a
// left (even-indexed) block seals.
func (bv *PairedBitvector1L) PushBack(bit bool) {
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
		bv.blockRun++
	}
	bv.totalLength++

	if int(bv.totalLength)%bv.width != 0 {
		return
	}
	bv.runningTotal += bv.blockRun
	if blockIdx%2 == 0 {
		pairIdx := blockIdx / 2
		if pairIdx >= len(bv.l0) {
			bv.l0 = append(bv.l0, bv.runningTotal)
		} else {
			bv.l0[pairIdx] = bv.runningTotal
		}
	}
	bv.blockRun = 0
}

// Save writes bv as totalLength, l0 (8-byte entries, one per pair),
// then the block words.
func (bv *PairedBitvector1L) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, bv.totalLength); err != nil {
		return err
	}
	if err := writeUint64Slice(w, bv.l0); err != nil {
		return err
	}
	return writeUint64Slice(w, bv.words)
}

// LoadPairedBitvector1L reconstructs a PairedBitvector1L previously
// written by Save.
func LoadPairedBitvector1L(width int, r io.Reader) (*PairedBitvector1L, error) {
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
	if expect := len(l0) * 2; len(words) != expect*wpb {
		return nil, newArchiveError(fmt.Sprintf("l0/words length mismatch: l0=%d words=%d wpb=%d", len(l0), len(words), wpb), nil)
	}
	return &PairedBitvector1L{width: width, words: words, l0: l0, totalLength: totalLength}, nil
}
