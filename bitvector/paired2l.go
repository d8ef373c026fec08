package bitvector

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pfbitvectors/pfbitvectors/bitops"
	"github.com/pfbitvectors/pfbitvectors/ranges"
)

// PairedBitvector2L combines the paired layout with the superblock
// tier: l0 holds one entry per pair, reset at
// every superblock boundary like Bitvector2L's per-block l0; l1 holds one
// entry per superblock, exactly as in Bitvector2L. Superblock width must
// be an even multiple of the block width so that every pair falls
// entirely inside one superblock.
type PairedBitvector2L struct {
	width      int
	superWidth int

	words       []uint64
	l0          []uint16 // l0[p] = local popcount through end of pair p's left block, reset per superblock
	l1          []uint64 // l1[s] = popcount of everything before superblock s
	totalLength uint64

	blockRun  uint64
	localRun  uint64
	grandTotal uint64
}

// NewPairedBitvector2L builds a PairedBitvector2L from src. superWidth
// must be a multiple of width, and that multiple must be even (so every
// block pair stays within one superblock).
func NewPairedBitvector2L(width, superWidth int, src ranges.BoolSeq) (*PairedBitvector2L, error) {
	if !bitops.IsValidBlockWidth(width) {
		return nil, newConstructionError("block width %d is not a supported size", width)
	}
	if !bitops.IsValidSuperblockWidth(superWidth) {
		return nil, newConstructionError("superblock width %d is not a supported size", superWidth)
	}
	if superWidth%width != 0 {
		return nil, newConstructionError("superblock width %d is not a multiple of block width %d", superWidth, width)
	}
	blocksPerSuper := superWidth / width
	if blocksPerSuper%2 != 0 {
		return nil, newConstructionError("superblock width %d must span an even number of %d-bit blocks for pairing", superWidth, width)
	}

	n := src.Len()
	wpb := bitops.WordsPerBlock(width)
	numBlocksRaw := n/width + 1
	numPairs := (numBlocksRaw + 1) / 2
	numBlocks := numPairs * 2

	words := ranges.PadWords(ranges.PackBools(src), wpb, numBlocks)

	l0 := make([]uint16, numPairs)
	l1 := make([]uint64, 0, numBlocks/blocksPerSuper+2)
	var localRun, grandTotal uint64
	for k := 0; k < numBlocks; k++ {
		if k%blocksPerSuper == 0 {
			l1 = append(l1, grandTotal)
			localRun = 0
		}
		cnt := bitops.PopCountWords(words[k*wpb : (k+1)*wpb])
		localRun += cnt
		grandTotal += cnt
		if k%2 == 0 {
			l0[k/2] = uint16(localRun)
		}
	}
	l1 = append(l1, grandTotal)

	return &PairedBitvector2L{
		width: width, superWidth: superWidth,
		words: words, l0: l0, l1: l1,
		totalLength: uint64(n),
	}, nil
}

func (bv *PairedBitvector2L) Size() uint64 { return bv.totalLength }

// Words exposes the flat, chronologically-ordered backing words, the same
// contract as Bitvector2L.Words.
func (bv *PairedBitvector2L) Words() []uint64 { return bv.words }

func (bv *PairedBitvector2L) Symbol(i uint64) bool {
	if i >= bv.totalLength {
		panic(fmt.Sprintf("bitvector: symbol index %d out of range [0,%d)", i, bv.totalLength))
	}
	wpb := bitops.WordsPerBlock(bv.width)
	blockIdx := int(i) / bv.width
	localBit := int(i) % bv.width
	wordIdx := blockIdx*wpb + localBit/64
	return bv.words[wordIdx]&(uint64(1)<<uint(localBit%64)) != 0
}

func (bv *PairedBitvector2L) Rank(i uint64) uint64 {
	if i > bv.totalLength {
		panic(fmt.Sprintf("bitvector: rank index %d exceeds size %d", i, bv.totalLength))
	}
	width := uint64(bv.width)
	superWidth := uint64(bv.superWidth)
	blocksPerSuper := bv.superWidth / bv.width
	pairsPerSuper := blocksPerSuper / 2

	superIdx := i / superWidth
	blockIdx := i / width
	pairIdx := int(blockIdx / 2)
	r := int(i % width)
	base := bv.l1[superIdx]

	wpb := bitops.WordsPerBlock(bv.width)
	blockWords := bv.words[int(blockIdx)*wpb : (int(blockIdx)+1)*wpb]

	if blockIdx%2 == 0 {
		if (blockIdx+1)*width > bv.totalLength {
			var prevLocal uint64
			if pairIdx%pairsPerSuper != 0 {
				prevRight := bv.words[(int(blockIdx)-1)*wpb : int(blockIdx)*wpb]
				prevLocal = uint64(bv.l0[pairIdx-1]) + bitops.PopCountWords(prevRight)
			}
			return base + prevLocal + bitops.PrefixPopCount(blockWords, r)
		}
		tail := bitops.PopCountWords(blockWords) - bitops.PrefixPopCount(blockWords, r)
		return base + uint64(bv.l0[pairIdx]) - tail
	}
	head := bitops.PrefixPopCount(blockWords, r)
	return base + uint64(bv.l0[pairIdx]) + head
}

// PushBack appends one bit. l0 is struck (or overwritten in place, if a
// stale placeholder from an earlier empty construction sits there) each
// time a left block seals; l1 is extended each time the following right
// block's seal crosses into a new superblock.
func (bv *PairedBitvector2L) PushBack(bit bool) {
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
	}
	bv.totalLength++

	if int(bv.totalLength)%bv.width != 0 {
		return
	}

	bv.localRun += bv.blockRun
	bv.grandTotal += bv.blockRun
	if blockIdx%2 == 0 {
		pairIdx := blockIdx / 2
		if pairIdx >= len(bv.l0) {
			bv.l0 = append(bv.l0, uint16(bv.localRun))
		} else {
			bv.l0[pairIdx] = uint16(bv.localRun)
		}
	}
	nextBlockIdx := blockIdx + 1
	if nextBlockIdx%blocksPerSuper == 0 {
		superIdx := nextBlockIdx / blocksPerSuper
		if superIdx >= len(bv.l1) {
			bv.l1 = append(bv.l1, bv.grandTotal)
		} else {
			bv.l1[superIdx] = bv.grandTotal
		}
		bv.localRun = 0
	}
	bv.blockRun = 0
}

// Save writes bv as totalLength, l1 (8-byte entries), l0 (2-byte
// entries), then the block words.
func (bv *PairedBitvector2L) Save(w io.Writer) error {
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

// LoadPairedBitvector2L reconstructs a PairedBitvector2L previously
// written by Save.
func LoadPairedBitvector2L(width, superWidth int, r io.Reader) (*PairedBitvector2L, error) {
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
	if expect := len(l0) * 2; len(words) != expect*wpb {
		return nil, newArchiveError(fmt.Sprintf("l0/words length mismatch: l0=%d words=%d wpb=%d", len(l0), len(words), wpb), nil)
	}
	return &PairedBitvector2L{
		width: width, superWidth: superWidth,
		words: words, l0: l0, l1: l1,
		totalLength: totalLength,
	}, nil
}
