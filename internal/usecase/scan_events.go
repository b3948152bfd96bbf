package usecase

import "context"

// Run consumes a one-directional stream of decoded barcode values until
// the context is cancelled or the channel closes. Rejected events
// (debounced duplicates, in-flight resolutions) are dropped silently;
// this is the debouncer doing its job, not an error condition.
func (s *ScanService) Run(ctx context.Context, events <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case barcode, ok := <-events:
			if !ok {
				return
			}
			_ = s.HandleScan(barcode)
		}
	}
}
