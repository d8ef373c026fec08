package wavelet

import "github.com/pfbitvectors/pfbitvectors/ranges"

// NewStr3x512x65536 builds a FlattenedBitvectors2L over a 3-symbol
// alphabet with a 512-bit block and a 65536-bit superblock.
func NewStr3x512x65536(src ranges.SymbolSeq) (*FlattenedBitvectors2L, error) {
	return NewFlattenedBitvectors2L(512, 65536, 3, src)
}

// NewStr255x512x65536 builds a FlattenedBitvectors2L over a 255-symbol
// alphabet (one short of a full byte) with a 512-bit block and a
// 65536-bit superblock.
func NewStr255x512x65536(src ranges.SymbolSeq) (*FlattenedBitvectors2L, error) {
	return NewFlattenedBitvectors2L(512, 65536, 255, src)
}

// NewStrSigma builds a FlattenedBitvectors2L for an arbitrary alphabet
// size; like the fixed-Sigma presets above, it forwards to
// NewFlattenedBitvectors2L.
func NewStrSigma(width, superWidth, sigma int, src ranges.SymbolSeq) (*FlattenedBitvectors2L, error) {
	return NewFlattenedBitvectors2L(width, superWidth, sigma, src)
}
