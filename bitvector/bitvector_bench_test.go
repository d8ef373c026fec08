package bitvector

import (
	"math/rand"
	"testing"

	"github.com/pfbitvectors/pfbitvectors/ranges"
)

func randomBools(n int, seed int64) ranges.Bools {
	rng := rand.New(rand.NewSource(seed))
	bits := make(ranges.Bools, n)
	for i := range bits {
		bits[i] = rng.Intn(2) == 1
	}
	return bits
}

func BenchmarkBitvector1LRank(b *testing.B) {
	bv, err := NewBitvector1L(64, randomBools(1<<20, 1))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	n := bv.Size()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bv.Rank(uint64(rng.Int63n(int64(n) + 1)))
	}
}

func BenchmarkBitvector2LRank(b *testing.B) {
	bv, err := NewBitvector2L(64, 4096, randomBools(1<<20, 1))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	n := bv.Size()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bv.Rank(uint64(rng.Int63n(int64(n) + 1)))
	}
}

func BenchmarkPairedBitvector2LRank(b *testing.B) {
	bv, err := NewPairedBitvector2L(64, 4096, randomBools(1<<20, 1))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	n := bv.Size()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bv.Rank(uint64(rng.Int63n(int64(n) + 1)))
	}
}

func BenchmarkBitvector2LConstruction(b *testing.B) {
	bits := randomBools(1<<16, 3)
	for i := 0; i < b.N; i++ {
		if _, err := NewBitvector2L(64, 4096, bits); err != nil {
			b.Fatal(err)
		}
	}
}
