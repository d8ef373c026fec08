package bitvector

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pfbitvectors/pfbitvectors/bitops"
	"github.com/pfbitvectors/pfbitvectors/ranges"
)

// Bitvector2L is the two-level bitvector: a per-block cumulative count
// (l0) reset at every superblock boundary, plus a
// per-superblock cumulative count (l1). Queries cost one l1 lookup, one
// l0 lookup, and one masked popcount over a single B-bit block.
type Bitvector2L struct {
	width      int // B
	superWidth int // S, a multiple of width

	words       []uint64 // flat, block-aligned word buffer
	l0          []uint16 // l0[k] = popcount of blocks since the last superblock boundary, up to but excluding block k
	l1          []uint64 // l1[s] = popcount of everything before superblock s
	totalLength uint64

	blockRun uint64 // bits set so far in the currently open block (Building state only)
}

// NewBitvector2L builds a Bitvector2L with the given block and superblock
// widths from src. superWidth must be a multiple of width.
func NewBitvector2L(width, superWidth int, src ranges.BoolSeq) (*Bitvector2L, error) {
	if !bitops.IsValidBlockWidth(width) {
		return nil, newConstructionError("block width %d is not a supported size", width)
	}
	if !bitops.IsValidSuperblockWidth(superWidth) {
		return nil, newConstructionError("superblock width %d is not a supported size", superWidth)
	}
	if superWidth%width != 0 {
		return nil, newConstructionError("superblock width %d is not a multiple of block width %d", superWidth, width)
	}

	n := src.Len()
	wpb := bitops.WordsPerBlock(width)
	blocksPerSuper := superWidth / width
	numBlocks := n/width + 1 // always keep one open block, even for n==0

	words := ranges.PadWords(ranges.PackBools(src), wpb, numBlocks)

	l0 := make([]uint16, numBlocks+1)
	l1 := make([]uint64, 0, numBlocks/blocksPerSuper+2)
	var localRun, grandTotal uint64
	for k := 0; k < numBlocks; k++ {
		if k%blocksPerSuper == 0 {
			l1 = append(l1, grandTotal)
			localRun = 0
		}
		l0[k] = uint16(localRun)
		cnt := bitops.PopCountWords(words[k*wpb : (k+1)*wpb])
		localRun += cnt
		grandTotal += cnt
	}
	l0[numBlocks] = uint16(localRun)
	l1 = append(l1, grandTotal)

	return &Bitvector2L{
		width: width, superWidth: superWidth,
		words: words, l0: l0, l1: l1,
		totalLength: uint64(n),
	}, nil
}

func (bv *Bitvector2L) Size() uint64 { return bv.totalLength }

// Words exposes the flat, chronologically-ordered backing words (bit j of
// Words()[i] is logical bit 64*i+j), the access a bit-plane consumer like
// package wavelet needs to combine several bitvectors word-at-a-time
// instead of bit-at-a-time.
func (bv *Bitvector2L) Words() []uint64 { return bv.words }

func (bv *Bitvector2L) Symbol(i uint64) bool {
	if i >= bv.totalLength {
		panic(fmt.Sprintf("bitvector: symbol index %d out of range [0,%d)", i, bv.totalLength))
	}
	wpb := bitops.WordsPerBlock(bv.width)
	blockIdx := int(i) / bv.width
	localBit := int(i) % bv.width
	wordIdx := blockIdx*wpb + localBit/64
	return bv.words[wordIdx]&(uint64(1)<<uint(localBit%64)) != 0
}

func (bv *Bitvector2L) Rank(i uint64) uint64 {
	if i > bv.totalLength {
		panic(fmt.Sprintf("bitvector: rank index %d exceeds size %d", i, bv.totalLength))
	}
	superIdx := i / uint64(bv.superWidth)
	blockIdx := i / uint64(bv.width)
	r := int(i % uint64(bv.width))

	base := bv.l1[superIdx] + uint64(bv.l0[blockIdx])
	if r == 0 {
		return base
	}
	wpb := bitops.WordsPerBlock(bv.width)
	blockWords := bv.words[int(blockIdx)*wpb : (int(blockIdx)+1)*wpb]
	return base + bitops.PrefixPopCount(blockWords, r)
}

// PushBack appends one bit, resetting the l0 accumulator and extending l1
// whenever a superblock boundary is crossed.
func (bv *Bitvector2L) PushBack(bit bool) {
	width := uint64(bv.width)
	wpb := bitops.WordsPerBlock(bv.width)
	blocksPerSuper := bv.superWidth / bv.width
	blockIdx := int(bv.totalLength / width)
	localBit := int(bv.totalLength % width)

	if needed := (blockIdx + 1) * wpb; len(bv.words) < needed {
		bv.words = append(bv.words, make([]uint64, needed-len(bv.words))...)
	}
	if bit {
		wordIdx := blockIdx*wpb + localBit/64
		bv.words[wordIdx] |= uint64(1) << uint(localBit%64)
		bv.blockRun++
		bv.l0[blockIdx+1]++
		bv.l1[len(bv.l1)-1]++
	}
	bv.totalLength++

	if int(bv.totalLength)%bv.width != 0 {
		return // block still open, nothing to seal
	}

	nextBlockIdx := blockIdx + 1
	if nextBlockIdx%blocksPerSuper == 0 {
		bv.l1 = append(bv.l1, bv.l1[len(bv.l1)-1])
		bv.l0[nextBlockIdx] = 0
		bv.l0 = append(bv.l0, 0)
	} else {
		bv.l0 = append(bv.l0, bv.l0[nextBlockIdx])
	}
	bv.blockRun = 0
}

// Save writes bv as totalLength, l1 (8-byte entries), l0 (2-byte
// entries, since a superblock's bit count always fits a uint16), then
// the block words.
func (bv *Bitvector2L) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, bv.totalLength); err != nil {
		return err
	}
	if err := writeUint64Slice(w, bv.l1); err != nil {
		return err
	}
	if err := writeUint16Slice(w, bv.l0); err != nil {
		return err
	}
	return writeUint64Slice(w, bv.words)
}

// LoadBitvector2L reconstructs a Bitvector2L previously written by Save.
// width and superWidth must match the archive's original parameters.
func LoadBitvector2L(width, superWidth int, r io.Reader) (*Bitvector2L, error) {
	if !bitops.IsValidBlockWidth(width) {
		return nil, newConstructionError("block width %d is not a supported size", width)
	}
	if !bitops.IsValidSuperblockWidth(superWidth) {
		return nil, newConstructionError("superblock width %d is not a supported size", superWidth)
	}
	var totalLength uint64
	if err := binary.Read(r, binary.LittleEndian, &totalLength); err != nil {
		return nil, newArchiveError("reading totalLength", err)
	}
	l1, err := readUint64Slice(r)
	if err != nil {
		return nil, newArchiveError("reading l1", err)
	}
	l0, err := readUint16Slice(r)
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
	return &Bitvector2L{
		width: width, superWidth: superWidth,
		words: words, l0: l0, l1: l1,
		totalLength: totalLength,
	}, nil
}
