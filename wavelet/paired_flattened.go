package wavelet

import (
	"encoding/binary"
	"io"

	"github.com/pfbitvectors/pfbitvectors/bitvector"
	"github.com/pfbitvectors/pfbitvectors/ranges"
)

// PairedFlattenedBitvectors2L is FlattenedBitvectors2L's twin built over
// PairedBitvector2L planes: same bit-plane layout and the same Rank/
// PrefixRank/AllRanks algorithms, at half the l0 table size per plane.
type PairedFlattenedBitvectors2L struct {
	core
	width, superWidth int
}

// NewPairedFlattenedBitvectors2L builds a PairedFlattenedBitvectors2L over
// src with alphabet size sigma, using width/superWidth for every
// underlying plane. superWidth/width must be even, as required by
// bitvector.NewPairedBitvector2L.
func NewPairedFlattenedBitvectors2L(width, superWidth, sigma int, src ranges.SymbolSeq) (*PairedFlattenedBitvectors2L, error) {
	if sigma < 1 {
		return nil, newConstructionError("alphabet size %d must be at least 1", sigma)
	}
	n := src.Len()
	for i := 0; i < n; i++ {
		if int(src.At(i)) >= sigma {
			return nil, newConstructionError("symbol %d at position %d exceeds alphabet size %d", src.At(i), i, sigma)
		}
	}

	depth := depthForSigma(sigma)
	planes := make([]bitPlane, depth)
	for d := 0; d < depth; d++ {
		plane, err := bitvector.NewPairedBitvector2L(width, superWidth, ranges.PlaneBoolSeq{Src: src, Plane: uint(d)})
		if err != nil {
			return nil, err
		}
		planes[d] = plane
	}

	return &PairedFlattenedBitvectors2L{
		core:       core{sigma: sigma, depth: depth, planes: planes, totalLength: uint64(n)},
		width:      width,
		superWidth: superWidth,
	}, nil
}

// Save writes f in the same layout as FlattenedBitvectors2L.Save, with
// each plane's own PairedBitvector2L archive in place of a plain one.
func (f *PairedFlattenedBitvectors2L) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, f.totalLength); err != nil {
		return err
	}
	for _, p := range f.planes {
		if err := p.(*bitvector.PairedBitvector2L).Save(w); err != nil {
			return err
		}
	}
	return nil
}

// LoadPairedFlattenedBitvectors2L reconstructs a PairedFlattenedBitvectors2L
// previously written by Save. width, superWidth, and sigma must match
// the archive's original construction parameters.
func LoadPairedFlattenedBitvectors2L(width, superWidth, sigma int, r io.Reader) (*PairedFlattenedBitvectors2L, error) {
	var totalLength uint64
	if err := binary.Read(r, binary.LittleEndian, &totalLength); err != nil {
		return nil, newArchiveError("reading length", err)
	}
	depth := depthForSigma(sigma)
	planes := make([]bitPlane, depth)
	for d := 0; d < depth; d++ {
		plane, err := bitvector.LoadPairedBitvector2L(width, superWidth, r)
		if err != nil {
			return nil, newArchiveError("reading plane", err)
		}
		planes[d] = plane
	}
	return &PairedFlattenedBitvectors2L{
		core:       core{sigma: sigma, depth: depth, planes: planes, totalLength: totalLength},
		width:      width,
		superWidth: superWidth,
	}, nil
}
