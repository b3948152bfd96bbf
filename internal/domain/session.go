package domain

import "time"

// SessionState is the published snapshot of one scanning session. It is a
// plain value: the session controller hands out copies, so readers never
// observe a partially updated state.
type SessionState struct {
	Active       bool           `json:"active"`
	LastBarcode  string         `json:"lastBarcode,omitempty"`
	LastScanAt   time.Time      `json:"lastScanAt,omitzero"`
	IsProcessing bool           `json:"isProcessing"`
	IsLoading    bool           `json:"isLoading"`
	Result       *ProductRecord `json:"result,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`

	// Generation increments on every session start; lookup completions from
	// a superseded generation are discarded instead of written back
	Generation uint64 `json:"generation"`
}
