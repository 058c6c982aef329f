package ports

import "io"

// ProgressItem tracks one unit of work.
type ProgressItem interface {
	// Log returns a writer for the item's output.
	Log() io.Writer
	// Cached marks the item as skipped because it was up to date.
	Cached()
	// Done completes the item, failed if err is non-nil.
	Done(err error)
}

// Progress reports per-output progress.
//
//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type Progress interface {
	// Start begins tracking the named item.
	Start(name string) ProgressItem
	// Close flushes and releases the recorder.
	Close() error
}
