package wavelet

import (
	"math/rand"
	"testing"

	"github.com/pfbitvectors/pfbitvectors/ranges"
)

func randomSymbols(n, sigma int, seed int64) ranges.Symbols {
	rng := rand.New(rand.NewSource(seed))
	symbols := make(ranges.Symbols, n)
	for i := range symbols {
		symbols[i] = uint32(rng.Intn(sigma))
	}
	return symbols
}

func BenchmarkFlattenedBitvectors2LRank(b *testing.B) {
	sv, err := NewFlattenedBitvectors2L(64, 4096, 16384, randomSymbols(1<<20, 16384, 1))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	n := sv.Size()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sv.Rank(uint64(rng.Int63n(int64(n)+1)), uint32(rng.Intn(16384)))
	}
}

func BenchmarkFlattenedBitvectors2LPrefixRank(b *testing.B) {
	sv, err := NewFlattenedBitvectors2L(64, 4096, 16384, randomSymbols(1<<20, 16384, 1))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	n := sv.Size()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sv.PrefixRank(uint64(rng.Int63n(int64(n)+1)), uint32(rng.Intn(16384)))
	}
}

func BenchmarkFlattenedBitvectors2LAllRanksAndPrefixRanks(b *testing.B) {
	sv, err := NewFlattenedBitvectors2L(64, 4096, 16384, randomSymbols(1<<18, 16384, 1))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	n := sv.Size()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sv.AllRanksAndPrefixRanks(uint64(rng.Int63n(int64(n) + 1)))
	}
}

func BenchmarkPairedFlattenedBitvectors2LRank(b *testing.B) {
	sv, err := NewPairedFlattenedBitvectors2L(64, 4096, 16384, randomSymbols(1<<20, 16384, 1))
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(2))
	n := sv.Size()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sv.Rank(uint64(rng.Int63n(int64(n)+1)), uint32(rng.Intn(16384)))
	}
}
