package bitvector

import "github.com/pfbitvectors/pfbitvectors/ranges"

// Presets below forward to NewBitvector2L/NewPairedBitvector2L with a
// fixed (width, superWidth) pair, for the combinations this library's
// own benchmarks and examples exercise most. Any other combination is
// still reachable through the general constructors; these exist purely
// so a caller doesn't have to spell out bitops.W512/bitops.S65536 for a
// one-off structure.

// NewBV64x4096 builds a Bitvector2L with a 64-bit block and a 4096-bit
// superblock.
func NewBV64x4096(src ranges.BoolSeq) (*Bitvector2L, error) { return NewBitvector2L(64, 4096, src) }

// NewBV128x4096 builds a Bitvector2L with a 128-bit block and a 4096-bit
// superblock.
func NewBV128x4096(src ranges.BoolSeq) (*Bitvector2L, error) { return NewBitvector2L(128, 4096, src) }

// NewBV256x4096 builds a Bitvector2L with a 256-bit block and a 4096-bit
// superblock.
func NewBV256x4096(src ranges.BoolSeq) (*Bitvector2L, error) { return NewBitvector2L(256, 4096, src) }

// NewBV512x4096 builds a Bitvector2L with a 512-bit block and a 4096-bit
// superblock.
func NewBV512x4096(src ranges.BoolSeq) (*Bitvector2L, error) { return NewBitvector2L(512, 4096, src) }

// NewBV64x65536 builds a Bitvector2L with a 64-bit block and a 65536-bit
// superblock.
func NewBV64x65536(src ranges.BoolSeq) (*Bitvector2L, error) { return NewBitvector2L(64, 65536, src) }

// NewBV512x65536 builds a Bitvector2L with a 512-bit block and a
// 65536-bit superblock.
func NewBV512x65536(src ranges.BoolSeq) (*Bitvector2L, error) {
	return NewBitvector2L(512, 65536, src)
}

// NewBV1024x65536 builds a Bitvector2L with a 1024-bit block and a
// 65536-bit superblock.
func NewBV1024x65536(src ranges.BoolSeq) (*Bitvector2L, error) {
	return NewBitvector2L(1024, 65536, src)
}

// NewBV2048x65536 builds a Bitvector2L with a 2048-bit block and a
// 65536-bit superblock.
func NewBV2048x65536(src ranges.BoolSeq) (*Bitvector2L, error) {
	return NewBitvector2L(2048, 65536, src)
}

// NewPairedBV64x65536 builds a PairedBitvector2L with a 64-bit block and
// a 65536-bit superblock.
func NewPairedBV64x65536(src ranges.BoolSeq) (*PairedBitvector2L, error) {
	return NewPairedBitvector2L(64, 65536, src)
}

// NewPairedBV512x65536 builds a PairedBitvector2L with a 512-bit block
// and a 65536-bit superblock.
func NewPairedBV512x65536(src ranges.BoolSeq) (*PairedBitvector2L, error) {
	return NewPairedBitvector2L(512, 65536, src)
}

// NewPairedBV1024x65536 builds a PairedBitvector2L with a 1024-bit block
// and a 65536-bit superblock.
func NewPairedBV1024x65536(src ranges.BoolSeq) (*PairedBitvector2L, error) {
	return NewPairedBitvector2L(1024, 65536, src)
}

// NewPairedBV2048x65536 builds a PairedBitvector2L with a 2048-bit block
// and a 65536-bit superblock.
func NewPairedBV2048x65536(src ranges.BoolSeq) (*PairedBitvector2L, error) {
	return NewPairedBitvector2L(2048, 65536, src)
}
