package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDatasetBitvectorLayouts(t *testing.T) {
	bits := []bool{true, false, true, false, true, true, false, false}
	for _, layout := range []string{"1l", "2l", "paired1l", "paired2l"} {
		req := DatasetCreateRequest{Kind: "bits", Layout: layout, Width: 64, SuperWidth: 4096, Bits: bits}
		d, err := buildDataset(req)
		require.NoError(t, err, layout)
		require.NotNil(t, d.Bits, layout)
		assert.EqualValues(t, len(bits), d.size(), layout)
		assert.EqualValues(t, 2, d.Bits.Rank(4), layout)
	}
}

func TestBuildDatasetWaveletLayouts(t *testing.T) {
	symbols := []uint32{0, 1, 2, 1, 0, 1, 2, 1, 2}
	for _, layout := range []string{"wavelet2l", "pairedwavelet2l"} {
		req := DatasetCreateRequest{Kind: "symbols", Layout: layout, Width: 64, SuperWidth: 4096, Sigma: 3, Symbols: symbols}
		d, err := buildDataset(req)
		require.NoError(t, err, layout)
		require.NotNil(t, d.Str, layout)
		assert.EqualValues(t, len(symbols), d.size(), layout)
		assert.EqualValues(t, 3, d.Str.Rank(9, 2), layout)
	}
}

func TestBuildDatasetRejectsUnknownLayout(t *testing.T) {
	_, err := buildDataset(DatasetCreateRequest{Layout: "bogus"})
	require.Error(t, err)
}

func TestDatasetManagerCreateGetDelete(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()
	m := NewDatasetManager(b)

	d, err := m.Create(DatasetCreateRequest{Layout: "1l", Width: 64, Bits: []bool{true, false, true}})
	require.NoError(t, err)
	assert.Len(t, m.List(), 1)

	got, err := m.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)

	require.NoError(t, m.Delete(d.ID))
	_, err = m.Get(d.ID)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}
