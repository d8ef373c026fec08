package wavelet

import (
	"encoding/binary"
	"io"

	"github.com/pfbitvectors/pfbitvectors/bitvector"
	"github.com/pfbitvectors/pfbitvectors/ranges"
)

// FlattenedBitvectors2L is a Sigma-ary string stored as depth =
// ceil(log2(Sigma)) independent Bitvector2L bit planes, one per bit of
// the symbol alphabet, LSB first. Plane d's bit at position i is bit d
// of the symbol at position i — no plane is a permutation of another,
// so planes can be queried and combined directly by position.
type FlattenedBitvectors2L struct {
	core
	width, superWidth int
}

// NewFlattenedBitvectors2L builds a FlattenedBitvectors2L over src, an
// alphabet of size sigma (symbols must lie in [0,sigma)), using width/
// superWidth for every underlying plane.
func NewFlattenedBitvectors2L(width, superWidth, sigma int, src ranges.SymbolSeq) (*FlattenedBitvectors2L, error) {
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
		plane, err := bitvector.NewBitvector2L(width, superWidth, ranges.PlaneBoolSeq{Src: src, Plane: uint(d)})
		if err != nil {
			return nil, err
		}
		planes[d] = plane
	}

	return &FlattenedBitvectors2L{
		core:       core{sigma: sigma, depth: depth, planes: planes, totalLength: uint64(n)},
		width:      width,
		superWidth: superWidth,
	}, nil
}

// Save writes f's length followed by each plane's own Bitvector2L
// archive in order from plane 0 up. The alphabet size is not part of
// the stream; a caller reconstructs with it via LoadFlattenedBitvectors2L.
func (f *FlattenedBitvectors2L) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, f.totalLength); err != nil {
		return err
	}
	for _, p := range f.planes {
		if err := p.(*bitvector.Bitvector2L).Save(w); err != nil {
			return err
		}
	}
	return nil
}

// LoadFlattenedBitvectors2L reconstructs a FlattenedBitvectors2L
// previously written by Save. width, superWidth, and sigma must match
// the archive's original construction parameters.
func LoadFlattenedBitvectors2L(width, superWidth, sigma int, r io.Reader) (*FlattenedBitvectors2L, error) {
	var totalLength uint64
	if err := binary.Read(r, binary.LittleEndian, &totalLength); err != nil {
		return nil, newArchiveError("reading length", err)
	}
	depth := depthForSigma(sigma)
	planes := make([]bitPlane, depth)
	for d := 0; d < depth; d++ {
		plane, err := bitvector.LoadBitvector2L(width, superWidth, r)
		if err != nil {
			return nil, newArchiveError("reading plane", err)
		}
		planes[d] = plane
	}
	return &FlattenedBitvectors2L{
		core:       core{sigma: sigma, depth: depth, planes: planes, totalLength: totalLength},
		width:      width,
		superWidth: superWidth,
	}, nil
}
