// Command rankbench builds a bitvector or Sigma-ary string from random
// input and reports query throughput; it has no option to read input
// from a file. It is a benchmarking
// harness, not part of the library's public contract: the core packages
// never import it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/pfbitvectors/pfbitvectors/adapter"
	"github.com/pfbitvectors/pfbitvectors/bitvector"
	"github.com/pfbitvectors/pfbitvectors/config"
	"github.com/pfbitvectors/pfbitvectors/ranges"
	"github.com/pfbitvectors/pfbitvectors/wavelet"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

// Report is the JSON document written to -out after a run, and the
// payload streamed over the websocket in -serve mode.
type Report struct {
	RunID            string  `json:"runId"`
	Timestamp        string  `json:"timestamp"`
	Layout           string  `json:"layout"`
	Size             uint64  `json:"size"`
	Width            int     `json:"width"`
	SuperWidth       int     `json:"superWidth,omitempty"`
	Sigma            int     `json:"sigma,omitempty"`
	Iterations       int     `json:"iterations"`
	DurationMs       float64 `json:"durationMs"`
	QueriesPerSecond float64 `json:"queriesPerSecond"`
	SizeHuman        string  `json:"sizeHuman"`
	NaiveQPS         float64 `json:"naiveQueriesPerSecond,omitempty"`
}

func main() {
	var (
		configPath = flag.String("config", "", "Path to a TOML config file (default: use built-in defaults)")
		size       = flag.Int("size", 1<<20, "Number of bits or symbols to generate")
		layout     = flag.String("layout", "2l", "Structure layout: 1l, 2l, paired1l, paired2l, wavelet2l, pairedwavelet2l")
		width      = flag.Int("width", 64, "Block width in bits")
		superWidth = flag.Int("super-width", 4096, "Superblock width in bits (2l/paired2l/wavelet layouts only)")
		sigma      = flag.Int("sigma", 4, "Alphabet size (wavelet layouts only)")
		iterations = flag.Int("iterations", 1000000, "Number of random Rank queries to time")
		seed       = flag.Int64("seed", 1, "Random seed for input generation and query positions")
		compareNaive = flag.Bool("naive", false, "Also benchmark the adapter.Naive* reference comparator")
		out        = flag.String("out", "", "Write the JSON report to this file (default: config's benchmark.output_file)")
		serve      = flag.Bool("serve", false, "Stream each run's throughput sample to websocket clients on -port")
		port       = flag.Int("port", 8080, "Port for -serve mode")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("rankbench %s (%s)\n", Version, Commit)
		return
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFrom(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	var stream *sampleBroadcaster
	if *serve {
		stream = newSampleBroadcaster()
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", stream.handleWebSocket)
		addr := fmt.Sprintf("127.0.0.1:%d", *port)
		log.Printf("rankbench streaming throughput samples on ws://%s/ws", addr)
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil { //nolint:gosec // demo server, localhost only
				log.Printf("websocket server stopped: %v", err)
			}
		}()
	}

	outPath := *out
	if outPath == "" {
		outPath = cfg.Benchmark.OutputFile
	}

	for {
		report, err := run(*layout, *width, *superWidth, *sigma, *size, *iterations, *seed, *compareNaive)
		if err != nil {
			log.Fatalf("benchmark failed: %v", err)
		}

		if err := writeReport(outPath, report); err != nil {
			log.Fatalf("writing report: %v", err)
		}
		fmt.Printf("%s: %s queries in %.2fms (%.0f q/s), size %s\n",
			report.Layout, humanize.Comma(int64(report.Iterations)), report.DurationMs,
			report.QueriesPerSecond, report.SizeHuman)

		if stream == nil {
			return
		}
		stream.publish(report)
		*seed++
		time.Sleep(time.Second)
	}
}

func run(layout string, width, superWidth, sigma, size, iterations int, seed int64, compareNaive bool) (Report, error) {
	rng := rand.New(rand.NewSource(seed))

	report := Report{
		RunID:      uuid.NewString(),
		Timestamp:  time.Now().Format(time.RFC3339),
		Layout:     layout,
		Width:      width,
		SuperWidth: superWidth,
		Sigma:      sigma,
		Iterations: iterations,
	}

	switch layout {
	case "1l", "2l", "paired1l", "paired2l":
		bits := make(ranges.Bools, size)
		for i := range bits {
			bits[i] = rng.Intn(2) == 1
		}
		bv, err := buildBitvector(layout, width, superWidth, bits)
		if err != nil {
			return Report{}, err
		}
		report.Size = bv.Size()
		report.SizeHuman = humanize.Comma(int64(bv.Size())) + " bits"

		positions := randomPositions(rng, bv.Size(), iterations)
		start := time.Now()
		for _, p := range positions {
			bv.Rank(p)
		}
		elapsed := time.Since(start)
		report.DurationMs = float64(elapsed.Microseconds()) / 1000
		report.QueriesPerSecond = float64(iterations) / elapsed.Seconds()

		if compareNaive {
			nb := adapter.NewNaiveBitvector(bits)
			start = time.Now()
			for _, p := range positions {
				nb.Rank(p)
			}
			naiveElapsed := time.Since(start)
			report.NaiveQPS = float64(iterations) / naiveElapsed.Seconds()
		}

	case "wavelet2l", "pairedwavelet2l":
		symbols := make(ranges.Symbols, size)
		for i := range symbols {
			symbols[i] = uint32(rng.Intn(sigma))
		}
		sv, err := buildSigmaString(layout, width, superWidth, sigma, symbols)
		if err != nil {
			return Report{}, err
		}
		report.Size = sv.Size()
		report.SizeHuman = humanize.Comma(int64(sv.Size())) + " symbols"

		positions := randomPositions(rng, sv.Size(), iterations)
		symbolForQuery := make([]uint32, iterations)
		for i := range symbolForQuery {
			symbolForQuery[i] = uint32(rng.Intn(sigma))
		}

		start := time.Now()
		for i, p := range positions {
			sv.Rank(p, symbolForQuery[i])
		}
		elapsed := time.Since(start)
		report.DurationMs = float64(elapsed.Microseconds()) / 1000
		report.QueriesPerSecond = float64(iterations) / elapsed.Seconds()

		if compareNaive {
			ns := adapter.NewNaiveSigmaString(symbols)
			start = time.Now()
			for i, p := range positions {
				ns.Rank(p, symbolForQuery[i])
			}
			naiveElapsed := time.Since(start)
			report.NaiveQPS = float64(iterations) / naiveElapsed.Seconds()
		}

	default:
		return Report{}, fmt.Errorf("unknown layout: %s", layout)
	}

	return report, nil
}

type bitvectorLike interface {
	Size() uint64
	Rank(i uint64) uint64
}

func buildBitvector(layout string, width, superWidth int, bits ranges.Bools) (bitvectorLike, error) {
	switch layout {
	case "1l":
		return bitvector.NewBitvector1L(width, bits)
	case "2l":
		return bitvector.NewBitvector2L(width, superWidth, bits)
	case "paired1l":
		return bitvector.NewPairedBitvector1L(width, bits)
	case "paired2l":
		return bitvector.NewPairedBitvector2L(width, superWidth, bits)
	default:
		return nil, fmt.Errorf("unknown bitvector layout: %s", layout)
	}
}

type sigmaStringLike interface {
	Size() uint64
	Rank(i uint64, c uint32) uint64
}

func buildSigmaString(layout string, width, superWidth, sigma int, symbols ranges.Symbols) (sigmaStringLike, error) {
	switch layout {
	case "wavelet2l":
		return wavelet.NewFlattenedBitvectors2L(width, superWidth, sigma, symbols)
	case "pairedwavelet2l":
		return wavelet.NewPairedFlattenedBitvectors2L(width, superWidth, sigma, symbols)
	default:
		return nil, fmt.Errorf("unknown wavelet layout: %s", layout)
	}
}

func randomPositions(rng *rand.Rand, size uint64, n int) []uint64 {
	positions := make([]uint64, n)
	for i := range positions {
		positions[i] = uint64(rng.Int63n(int64(size) + 1))
	}
	return positions
}

func writeReport(path string, report Report) error {
	f, err := os.Create(path) // #nosec G304 -- user-supplied report path
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
