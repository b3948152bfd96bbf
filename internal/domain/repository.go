package domain

import "context"

// ProductCache defines the barcode -> ProductRecord store. Implementations
// load their full mapping once at construction and persist it on every
// mutation; Get never touches durable storage.
type ProductCache interface {
	Get(barcode string) (*ProductRecord, bool)
	Put(record *ProductRecord) error
	Clear() error
	Len() int
}

// LookupClient defines the interface for resolving a barcode against a
// remote product database
type LookupClient interface {
	Lookup(ctx context.Context, barcode string) (*ProductRecord, error)
}

// CaptureSession defines the interface to the capture hardware provider.
// Start and Stop are dispatched fire-and-forget from the session
// controller and must tolerate redundant calls.
type CaptureSession interface {
	Start() error
	Stop() error
}
