package api

import "time"

// DatasetCreateRequest describes a dataset to build and register with a
// DatasetManager. Kind selects whether Bits or Symbols is populated;
// Layout selects which concrete structure in package bitvector/wavelet
// backs the dataset.
type DatasetCreateRequest struct {
	Kind       string `json:"kind"`       // "bits" or "symbols"
	Layout     string `json:"layout"`     // "1l", "2l", "paired1l", "paired2l", "wavelet2l", "pairedwavelet2l"
	Width      int    `json:"width"`
	SuperWidth int    `json:"superWidth,omitempty"`
	Sigma      int    `json:"sigma,omitempty"`
	Bits       []bool `json:"bits,omitempty"`
	Symbols    []uint32 `json:"symbols,omitempty"`
}

// DatasetCreateResponse is returned after a dataset is built.
type DatasetCreateResponse struct {
	DatasetID string    `json:"datasetId"`
	Layout    string    `json:"layout"`
	CreatedAt time.Time `json:"createdAt"`
	Size      uint64    `json:"size"`
	SizeHuman string    `json:"sizeHuman"`
}

// DatasetStatusResponse reports a dataset's identity and size.
type DatasetStatusResponse struct {
	DatasetID string    `json:"datasetId"`
	Layout    string    `json:"layout"`
	CreatedAt time.Time `json:"createdAt"`
	Size      uint64    `json:"size"`
}

// RankQueryResponse is the result of a rank/prefix_rank query.
type RankQueryResponse struct {
	Index uint64 `json:"index"`
	Value uint64 `json:"value"`
}

// SymbolQueryResponse is the result of a symbol/access query.
type SymbolQueryResponse struct {
	Index uint64 `json:"index"`
	Bit   *bool  `json:"bit,omitempty"`
	Value *uint32 `json:"value,omitempty"`
}

// AllRanksQueryResponse is the result of an all_ranks/all_ranks_and_prefix_ranks
// query, valid only for wavelet-layout datasets.
type AllRanksQueryResponse struct {
	Index  uint64   `json:"index"`
	Ranks  []uint64 `json:"ranks"`
	Prefix []uint64 `json:"prefixRanks,omitempty"`
}

// ErrorResponse is the JSON body written for any non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
