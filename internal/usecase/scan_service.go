package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/scanlens/backend/internal/domain"
)

// ScanServiceConfig holds configuration for the scan service
type ScanServiceConfig struct {
	// Cooldown is the minimum interval between accepting two scans of the
	// same barcode
	Cooldown time.Duration

	// LookupTimeout bounds a single remote resolution
	LookupTimeout time.Duration
}

// ScanService serializes a noisy stream of raw decoded-barcode events
// into at most one in-flight resolution at a time, with duplicate
// suppression, and drives the cache -> remote lookup pipeline.
//
// All session state lives behind one mutex: every transition happens
// under it, and remote completions re-acquire it before writing back.
// Capture hardware start/stop is dispatched fire-and-forget so it can
// never block a state transition.
type ScanService struct {
	cache         domain.ProductCache
	client        domain.LookupClient
	capture       domain.CaptureSession
	cooldown      time.Duration
	lookupTimeout time.Duration

	mutex     sync.Mutex
	state     domain.SessionState
	listeners []func(domain.SessionState)
}

// NewScanService creates a new scan service with dependencies
func NewScanService(
	cache domain.ProductCache,
	client domain.LookupClient,
	capture domain.CaptureSession,
	config ScanServiceConfig,
) *ScanService {
	cooldown := config.Cooldown
	if cooldown == 0 {
		cooldown = 2 * time.Second
	}

	lookupTimeout := config.LookupTimeout
	if lookupTimeout == 0 {
		lookupTimeout = 10 * time.Second
	}

	return &ScanService{
		cache:         cache,
		client:        client,
		capture:       capture,
		cooldown:      cooldown,
		lookupTimeout: lookupTimeout,
	}
}

// Subscribe registers a listener invoked with a state snapshot after
// every session state change. Listeners are called outside the state
// lock and must not block for long.
func (s *ScanService) Subscribe(listener func(domain.SessionState)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.listeners = append(s.listeners, listener)
}

// State returns a snapshot of the current session state
func (s *ScanService) State() domain.SessionState {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// StartScanning resets session state and enables the capture session.
// Any previous result or error is discarded; the generation bump makes
// remote completions from the previous session drop themselves.
func (s *ScanService) StartScanning() {
	s.mutex.Lock()
	generation := s.state.Generation + 1
	s.state = domain.SessionState{
		Active:     true,
		Generation: generation,
	}
	s.mutex.Unlock()

	go s.startCapture()
	s.notify()
}

// StopScanning disables the capture session. Session state is kept so
// the last result or error stays observable until the next start.
func (s *ScanService) StopScanning() {
	s.mutex.Lock()
	s.state.Active = false
	s.mutex.Unlock()

	go s.stopCapture()
	s.notify()
}

// HandleScan is the raw scan event entry point. The event is dropped
// with ErrScanRejected when a resolution is already in flight, or when
// it repeats the previous barcode within the cooldown window. An
// accepted event resolves cache-first; a cache miss dispatches the
// remote lookup asynchronously and returns immediately.
func (s *ScanService) HandleScan(barcode string) error {
	if barcode == "" {
		return domain.ErrInvalidRequest
	}

	s.mutex.Lock()

	if s.state.IsProcessing {
		s.mutex.Unlock()
		return domain.ErrScanRejected
	}

	now := time.Now()
	if barcode == s.state.LastBarcode && now.Sub(s.state.LastScanAt) < s.cooldown {
		s.mutex.Unlock()
		return domain.ErrScanRejected
	}

	s.state.IsProcessing = true
	s.state.LastBarcode = barcode
	s.state.LastScanAt = now

	if record, ok := s.cache.Get(barcode); ok {
		s.state.Result = record
		s.state.ErrorMessage = ""
		s.state.IsProcessing = false
		s.state.IsLoading = false
		s.state.Active = false
		s.mutex.Unlock()

		go s.stopCapture()
		s.notify()
		return nil
	}

	s.state.IsLoading = true
	generation := s.state.Generation
	s.mutex.Unlock()

	s.notify()
	go s.resolveRemote(generation, barcode)
	return nil
}

// LookupProduct is the imperative resolution path: cache-first, then
// remote, persisting on success. It bypasses the debouncer and does not
// touch session state.
func (s *ScanService) LookupProduct(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	if record, ok := s.cache.Get(barcode); ok {
		return record, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	record, err := s.client.Lookup(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(record); err != nil {
		log.Printf("[SCAN] Failed to persist record for barcode %q: %v", barcode, err)
	}

	return record, nil
}

// resolveRemote performs the remote half of a scan resolution and writes
// the outcome back into session state. A completion whose generation was
// superseded by a session restart is discarded.
func (s *ScanService) resolveRemote(generation uint64, barcode string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.lookupTimeout)
	defer cancel()

	record, err := s.client.Lookup(ctx, barcode)

	s.mutex.Lock()

	if s.state.Generation != generation {
		s.mutex.Unlock()
		log.Printf("[SCAN] Dropping stale lookup result for barcode %q (generation %d)", barcode, generation)
		return
	}

	if err != nil {
		s.state.ErrorMessage = err.Error()
		s.state.IsProcessing = false
		s.state.IsLoading = false
		s.mutex.Unlock()

		// Capture keeps running on failure so the user can rescan
		s.notify()
		return
	}

	s.state.Result = record
	s.state.ErrorMessage = ""
	s.state.IsProcessing = false
	s.state.IsLoading = false
	s.state.Active = false
	s.mutex.Unlock()

	if err := s.cache.Put(record); err != nil {
		log.Printf("[SCAN] Failed to persist record for barcode %q: %v", barcode, err)
	}

	go s.stopCapture()
	s.notify()
}

// notify delivers a state snapshot to every listener
func (s *ScanService) notify() {
	s.mutex.Lock()
	state := s.state
	listeners := make([]func(domain.SessionState), len(s.listeners))
	copy(listeners, s.listeners)
	s.mutex.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}

func (s *ScanService) startCapture() {
	if err := s.capture.Start(); err != nil {
		log.Printf("[SCAN] Failed to start capture session: %v", err)
	}
}

func (s *ScanService) stopCapture() {
	if err := s.capture.Stop(); err != nil {
		log.Printf("[SCAN] Failed to stop capture session: %v", err)
	}
}
