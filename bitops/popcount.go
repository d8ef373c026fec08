package bitops

import "math/bits"

// PopCountWords returns the number of set bits across words. Bit ordering
// is direct/chronological: bit j of words[i] is logical bit 64*i+j, the
// same convention the construction pipeline (package ranges) packs
// booleans into.
func PopCountWords(words []uint64) uint64 {
	var n uint64
	for _, w := range words {
		n += uint64(bits.OnesCount64(w))
	}
	return n
}

// PrefixPopCount returns the number of set bits among the first r logical
// bits of words. r must satisfy 0 <= r <= 64*len(words).
func PrefixPopCount(words []uint64, r int) uint64 {
	if r <= 0 {
		return 0
	}
	full := r / 64
	var n uint64
	for _, w := range words[:full] {
		n += uint64(bits.OnesCount64(w))
	}
	if rem := r % 64; rem > 0 {
		mask := uint64(1)<<uint(rem) - 1
		n += uint64(bits.OnesCount64(words[full] & mask))
	}
	return n
}

// SkippedPopCount counts a contiguous run of bits at the head or tail of
// a block, computing the mask on the fly rather than materialising a
// 2*width+1 entry lookup table per block width.
//
// For skip in [0, width] it counts bits [skip, width) (skip the first
// `skip` bits, count the tail). For skip in [width, 2*width] it counts
// bits [0, skip-width) (count only the first skip-width bits, skip the
// tail). Both halves agree at skip == width: zero bits counted.
func SkippedPopCount(words []uint64, width, skip int) uint64 {
	switch {
	case skip <= 0:
		return PopCountWords(words)
	case skip >= 2*width:
		return PopCountWords(words)
	case skip <= width:
		return PopCountWords(words) - PrefixPopCount(words, skip)
	default:
		return PrefixPopCount(words, skip-width)
	}
}
