package ports

import "time"

// StalenessReason names why a node was found up to date or stale.
type StalenessReason string

const (
	ReasonUpToDate      StalenessReason = "up_to_date"
	ReasonModified      StalenessReason = "modified"
	ReasonNeverBuilt    StalenessReason = "never_built"
	ReasonInputsChanged StalenessReason = "inputs_changed"
	ReasonInputStale    StalenessReason = "input_stale"
	ReasonInputMissing  StalenessReason = "input_missing"
	ReasonOptionalFlip  StalenessReason = "optional_toggled"
)

// Metrics records engine activity.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveStaleness counts one freshness decision.
	ObserveStaleness(reason StalenessReason)
	// ObserveSignature records the duration of one signature computation.
	ObserveSignature(d time.Duration, err error)
	// ObserveCommit records one UpdateOutputs call.
	ObserveCommit(outputs int, err error)
}
