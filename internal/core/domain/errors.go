package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrEmptyPath is returned when a node without a path is registered.
	ErrEmptyPath = zerr.New("dependency path is empty")

	// ErrMissingEdgeInfo is returned when a walk reaches an input without metadata for its output.
	ErrMissingEdgeInfo = zerr.New("missing edge metadata")

	// ErrInvalidRowID is returned when a store write receives an unpersisted row id.
	ErrInvalidRowID = zerr.New("invalid row id")

	// ErrNodeNotFound is returned when a path is neither cached nor stored.
	ErrNodeNotFound = zerr.New("dependency not found")

	// ErrOutputMissing is returned when an output is committed but does not exist.
	ErrOutputMissing = zerr.New("output does not exist")

	// ErrHashFailed is returned when a node's content cannot be hashed.
	ErrHashFailed = zerr.New("failed to hash content")

	// ErrStatFailed is returned when a path cannot be inspected.
	ErrStatFailed = zerr.New("failed to stat path")

	// ErrCommitFailed is returned when a commit transaction is rolled back.
	ErrCommitFailed = zerr.New("failed to commit outputs")

	// ErrStoreOpenFailed is returned when the graph database cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open graph store")

	// ErrStoreSchemaFailed is returned when the graph schema cannot be created.
	ErrStoreSchemaFailed = zerr.New("failed to create graph schema")

	// ErrManifestNotFound is returned when no manifest exists in the directory tree.
	ErrManifestNotFound = zerr.New("could not find depcache.yaml")

	// ErrManifestReadFailed is returned when the manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrInvalidInput is returned when a manifest input sets none or more than one of path, glob and data.
	ErrInvalidInput = zerr.New("input must set exactly one of path, glob or data")

	// ErrUnknownOutput is returned when a requested output is not declared in the manifest.
	ErrUnknownOutput = zerr.New("output not declared in manifest")

	// ErrUnknownType is returned when an output references an undeclared type.
	ErrUnknownType = zerr.New("type not declared in manifest")

	// ErrCycleDetected is returned when manifest outputs depend on each other in a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrInputResolutionFailed is returned when a glob input cannot be expanded.
	ErrInputResolutionFailed = zerr.New("failed to resolve inputs")

	// ErrOutOfDate is returned by status checks that must fail on stale outputs.
	ErrOutOfDate = zerr.New("outputs are out of date")

	// ErrCleanFailed is returned when the metadata directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove graph store")
)

// MaxGraphDepthError is returned when a walk descends deeper than MaxFileGraphDepth.
// A cyclic graph surfaces as this error.
type MaxGraphDepthError struct {
	Path  string
	Depth int
}

func (e *MaxGraphDepthError) Error() string {
	return fmt.Sprintf("max graph depth %d exceeded at %s (depth %d)", MaxFileGraphDepth, e.Path, e.Depth)
}

// MissingInputError is returned when a required input of an output does not exist.
type MissingInputError struct {
	Input  string
	Output string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input %s of %s does not exist", e.Input, e.Output)
}

// StoreError wraps a driver failure with the name of the store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("graph store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
