package domain

import "time"

// Cursor is an opaque position in the migration scan. It wraps the last
// processed question id; ids are ULIDs so lexical order matches id order.
type Cursor struct {
	after string
}

// CursorAfter builds a cursor positioned after the given id.
func CursorAfter(id string) Cursor {
	return Cursor{after: id}
}

// StartCursor is positioned before every id.
var StartCursor = Cursor{}

func (c Cursor) After() string { return c.after }

func (c Cursor) IsStart() bool { return c.after == "" }

func (c Cursor) String() string {
	if c.after == "" {
		return "start"
	}
	return c.after
}

// ItemError records a single record that could not be migrated.
type ItemError struct {
	QuestionID string `json:"questionId"`
	Reason     string `json:"reason"`
}

// BatchResult is the outcome of one batch step.
type BatchResult struct {
	Processed  int
	Updated    int
	Errors     []ItemError
	NextCursor Cursor
	// Exhausted is set when the batch found fewer rows than requested.
	Exhausted bool
}

// PendingQuestion is a legacy row awaiting the generalized reference.
type PendingQuestion struct {
	ID         string
	ThemeID    string
	SubthemeID string
	GroupID    string
}

type MigrationState string

const (
	MigrationRunning   MigrationState = "running"
	MigrationCompleted MigrationState = "completed"
	MigrationCancelled MigrationState = "cancelled"
	MigrationFailed    MigrationState = "failed"
)

// MigrationStatus is the observable state of one workflow run.
type MigrationStatus struct {
	Handle        string         `json:"handle"`
	State         MigrationState `json:"state"`
	DryRun        bool           `json:"dryRun"`
	BatchSize     int            `json:"batchSize"`
	InitialCount  int64          `json:"initialCount"`
	Processed     int            `json:"processed"`
	Updated       int            `json:"updated"`
	ErrorCount    int            `json:"errorCount"`
	Errors        []ItemError    `json:"errors"`
	Batches       int            `json:"batches"`
	Cursor        string         `json:"cursor"`
	Remaining     int64          `json:"remaining"`
	Converged     bool           `json:"converged"`
	Done          bool           `json:"done"`
	FailureReason string         `json:"failureReason,omitempty"`
	StartedAt     time.Time      `json:"startedAt"`
	FinishedAt    *time.Time     `json:"finishedAt,omitempty"`
}
