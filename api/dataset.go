package api

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pfbitvectors/pfbitvectors/bitvector"
	"github.com/pfbitvectors/pfbitvectors/ranges"
	"github.com/pfbitvectors/pfbitvectors/wavelet"
)

// ErrDatasetNotFound is returned when a dataset ID has no registered
// dataset.
var ErrDatasetNotFound = errors.New("dataset not found")

// bitvectorLike is the subset of Bitvector1L/Bitvector2L/PairedBitvector1L/
// PairedBitvector2L that a rank query endpoint needs.
type bitvectorLike interface {
	Size() uint64
	Symbol(i uint64) bool
	Rank(i uint64) uint64
}

// sigmaStringLike is the subset of FlattenedBitvectors2L/
// PairedFlattenedBitvectors2L that a rank query endpoint needs.
type sigmaStringLike interface {
	Size() uint64
	Symbol(i uint64) uint32
	Rank(i uint64, c uint32) uint64
	PrefixRank(i uint64, c uint32) uint64
	AllRanks(i uint64) []uint64
	AllRanksAndPrefixRanks(i uint64) ([]uint64, []uint64)
}

// Dataset is a registered, queryable structure: exactly one of Bits or
// Str is non-nil, depending on which layout built it.
type Dataset struct {
	ID        string
	Layout    string
	CreatedAt time.Time
	Bits      bitvectorLike
	Str       sigmaStringLike
}

func (d *Dataset) size() uint64 {
	if d.Bits != nil {
		return d.Bits.Size()
	}
	return d.Str.Size()
}

// buildDataset constructs the concrete bitvector or Sigma-ary string
// named by req.Layout.
func buildDataset(req DatasetCreateRequest) (*Dataset, error) {
	layout := strings.ToLower(req.Layout)
	d := &Dataset{Layout: layout, CreatedAt: time.Now()}

	switch layout {
	case "1l":
		bv, err := bitvector.NewBitvector1L(req.Width, ranges.Bools(req.Bits))
		if err != nil {
			return nil, err
		}
		d.Bits = bv
	case "2l":
		bv, err := bitvector.NewBitvector2L(req.Width, req.SuperWidth, ranges.Bools(req.Bits))
		if err != nil {
			return nil, err
		}
		d.Bits = bv
	case "paired1l":
		bv, err := bitvector.NewPairedBitvector1L(req.Width, ranges.Bools(req.Bits))
		if err != nil {
			return nil, err
		}
		d.Bits = bv
	case "paired2l":
		bv, err := bitvector.NewPairedBitvector2L(req.Width, req.SuperWidth, ranges.Bools(req.Bits))
		if err != nil {
			return nil, err
		}
		d.Bits = bv
	case "wavelet2l":
		sv, err := wavelet.NewFlattenedBitvectors2L(req.Width, req.SuperWidth, req.Sigma, ranges.Symbols(req.Symbols))
		if err != nil {
			return nil, err
		}
		d.Str = sv
	case "pairedwavelet2l":
		sv, err := wavelet.NewPairedFlattenedBitvectors2L(req.Width, req.SuperWidth, req.Sigma, ranges.Symbols(req.Symbols))
		if err != nil {
			return nil, err
		}
		d.Str = sv
	default:
		return nil, errors.New("unknown layout: " + req.Layout)
	}
	return d, nil
}

// DatasetManager tracks datasets built over the server's lifetime, keyed
// by a random hex ID.
type DatasetManager struct {
	mu          sync.RWMutex
	datasets    map[string]*Dataset
	broadcaster *Broadcaster
}

// NewDatasetManager creates an empty DatasetManager that reports
// creation through broadcaster; deletion is not reported.
func NewDatasetManager(broadcaster *Broadcaster) *DatasetManager {
	return &DatasetManager{
		datasets:    make(map[string]*Dataset),
		broadcaster: broadcaster,
	}
}

func newDatasetID() string {
	return uuid.NewString()
}

// Create builds and registers a new dataset.
func (m *DatasetManager) Create(req DatasetCreateRequest) (*Dataset, error) {
	d, err := buildDataset(req)
	if err != nil {
		return nil, err
	}
	d.ID = newDatasetID()

	m.mu.Lock()
	m.datasets[d.ID] = d
	m.mu.Unlock()

	m.broadcaster.Publish(BroadcastEvent{
		Type:      EventTypeDatasetCreated,
		DatasetID: d.ID,
		Data: map[string]interface{}{
			"layout": d.Layout,
			"size":   d.size(),
		},
	})
	return d, nil
}

// Get returns the dataset registered under id.
func (m *DatasetManager) Get(id string) (*Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.datasets[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	return d, nil
}

// Delete removes a dataset.
func (m *DatasetManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.datasets[id]; !ok {
		return ErrDatasetNotFound
	}
	delete(m.datasets, id)
	return nil
}

// List returns every registered dataset ID.
func (m *DatasetManager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.datasets))
	for id := range m.datasets {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of registered datasets.
func (m *DatasetManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.datasets)
}
