package dto

// StartMigrationRequest starts a taxonomy backfill run. A zero batchSize uses
// the configured default.
// @Description Request body for starting the taxonomy backfill
type StartMigrationRequest struct {
	BatchSize int  `json:"batchSize"`
	DryRun    bool `json:"dryRun"`
	Resume    bool `json:"resume"`
}

// StartMigrationResponse carries the handle used for status and cancel.
type StartMigrationResponse struct {
	Handle string `json:"handle"`
}

// ReconcileCounterRequest names the namespace to verify. An empty id selects
// the global namespace.
// @Description Request body for reconciling an aggregate counter
type ReconcileCounterRequest struct {
	Kind string `json:"kind,omitempty"`
	ID   string `json:"id,omitempty"`
}
