// Package capture is the concurrent batch-capture engine: it fans capture
// tasks out over one shared browser session, streams completion events in
// arrival order, and aggregates per-address outcomes.
package capture

import (
	"encoding/json"
	"time"
)

// Status is the terminal state of one capture task.
type Status int

const (
	Success Status = iota
	Failure
)

func (s Status) String() string {
	if s == Success {
		return "success"
	}
	return "failure"
}

// MarshalJSON encodes the status as its name; the UI and the records API
// read it as a string.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the names produced by MarshalJSON.
func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	if name == "success" {
		*s = Success
	} else {
		*s = Failure
	}
	return nil
}

// OutcomeRecord is the immutable result of one capture task. Exactly one is
// produced per submitted address, success or not.
type OutcomeRecord struct {
	Address      Address       `json:"address"`
	Status       Status        `json:"status"`
	ArtifactPath string        `json:"artifactPath,omitempty"`
	ErrorSummary string        `json:"errorSummary,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// ProgressEvent is streamed to the observer as each task finishes, in
// completion order.
type ProgressEvent struct {
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
	Outcome   OutcomeRecord `json:"outcome"`
}

// BatchRun is the aggregate state of one execution over an address list.
type BatchRun struct {
	Submitted int
	Completed int
	Records   []OutcomeRecord
}

// Done reports whether every submitted address has produced an outcome.
func (b *BatchRun) Done() bool {
	return b.Completed == b.Submitted
}
