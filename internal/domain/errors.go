package domain

import "errors"

var (
	// ErrProductNotFound is returned when the upstream envelope decodes but
	// carries no product for the barcode
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidEndpoint is returned when the barcode cannot be interpolated
	// into a valid request URL; fatal to that lookup only
	ErrInvalidEndpoint = errors.New("invalid lookup endpoint")

	// ErrTransportFailure is returned when the network layer reported an error
	ErrTransportFailure = errors.New("product lookup request failed")

	// ErrEmptyResponse is returned when the request succeeded but returned no body
	ErrEmptyResponse = errors.New("empty response from product database")

	// ErrDecodeFailure is returned when the response JSON did not match the
	// expected envelope shape
	ErrDecodeFailure = errors.New("failed to decode product response")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrScanRejected is returned when a raw scan event is dropped by the
	// debouncer (duplicate within cooldown, or a resolution already in flight)
	ErrScanRejected = errors.New("scan rejected")
)
