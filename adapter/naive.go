// Package adapter wraps baseline, non-succinct reference structures
// behind the same capability surface the bitvector and wavelet packages
// expose, so a benchmark can compare the real structures against an
// obvious, unoptimized implementation of the same operations.
package adapter

// NaiveBitvector answers Symbol/Rank by scanning a flat []bool, with no
// block or superblock tabulation. It exists purely as the "how much did
// the tabulation actually buy us" comparator for cmd/rankbench; nothing
// in the bitvector package depends on it.
type NaiveBitvector struct {
	bits []bool
}

// NewNaiveBitvector copies src into a NaiveBitvector.
func NewNaiveBitvector(src []bool) *NaiveBitvector {
	bits := make([]bool, len(src))
	copy(bits, src)
	return &NaiveBitvector{bits: bits}
}

// Size returns the number of bits.
func (n *NaiveBitvector) Size() uint64 { return uint64(len(n.bits)) }

// Symbol returns the bit at position i.
func (n *NaiveBitvector) Symbol(i uint64) bool { return n.bits[i] }

// Rank counts the set bits in [0, i) by linear scan.
func (n *NaiveBitvector) Rank(i uint64) uint64 {
	var count uint64
	for j := uint64(0); j < i; j++ {
		if n.bits[j] {
			count++
		}
	}
	return count
}

// PushBack appends a bit.
func (n *NaiveBitvector) PushBack(bit bool) { n.bits = append(n.bits, bit) }

// NaiveSigmaString answers Symbol/Rank/PrefixRank by scanning a flat
// []uint32, the same role NaiveBitvector plays for the wavelet-style
// structures.
type NaiveSigmaString struct {
	symbols []uint32
}

// NewNaiveSigmaString copies src into a NaiveSigmaString.
func NewNaiveSigmaString(src []uint32) *NaiveSigmaString {
	symbols := make([]uint32, len(src))
	copy(symbols, src)
	return &NaiveSigmaString{symbols: symbols}
}

// Size returns the number of symbols.
func (n *NaiveSigmaString) Size() uint64 { return uint64(len(n.symbols)) }

// Symbol returns the symbol at position i.
func (n *NaiveSigmaString) Symbol(i uint64) uint32 { return n.symbols[i] }

// Rank counts occurrences of c in [0, i) by linear scan.
func (n *NaiveSigmaString) Rank(i uint64, c uint32) uint64 {
	var count uint64
	for j := uint64(0); j < i; j++ {
		if n.symbols[j] == c {
			count++
		}
	}
	return count
}

// PrefixRank counts positions in [0, i) whose symbol is strictly less
// than c, by linear scan.
func (n *NaiveSigmaString) PrefixRank(i uint64, c uint32) uint64 {
	var count uint64
	for j := uint64(0); j < i; j++ {
		if n.symbols[j] < c {
			count++
		}
	}
	return count
}

// AllRanks returns Rank(i, c) for every c in the symbol range seen so
// far, by repeated linear scan.
func (n *NaiveSigmaString) AllRanks(i uint64) []uint64 {
	ranks, _ := n.AllRanksAndPrefixRanks(i)
	return ranks
}

// AllRanksAndPrefixRanks returns Rank(i, c) and PrefixRank(i, c) for
// every c in [0, sigma), where sigma is one past the largest symbol
// ever pushed.
func (n *NaiveSigmaString) AllRanksAndPrefixRanks(i uint64) ([]uint64, []uint64) {
	sigma := uint32(0)
	for _, s := range n.symbols {
		if s+1 > sigma {
			sigma = s + 1
		}
	}
	ranks := make([]uint64, sigma)
	prefix := make([]uint64, sigma)
	for j := uint64(0); j < i; j++ {
		s := n.symbols[j]
		ranks[s]++
		for c := s + 1; c < sigma; c++ {
			prefix[c]++
		}
	}
	return ranks, prefix
}

// PushBack appends a symbol.
func (n *NaiveSigmaString) PushBack(symbol uint32) { n.symbols = append(n.symbols, symbol) }
