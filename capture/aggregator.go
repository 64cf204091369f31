package capture

import (
	"sync"

	"webshotter/log"
	"webshotter/storage"
)

// Aggregator accumulates outcome records into an append-only log and drives
// archive creation for the run's artifacts.
type Aggregator struct {
	dirs   storage.BatchDirs
	logger *log.Logger

	mu      sync.Mutex
	records []OutcomeRecord
}

// NewAggregator builds an aggregator over the run's artifact store.
func NewAggregator(dirs storage.BatchDirs, logger *log.Logger) *Aggregator {
	return &Aggregator{dirs: dirs, logger: logger}
}

// Append records one outcome. Called in completion order.
func (a *Aggregator) Append(rec OutcomeRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, rec)
}

// Records returns the outcome log in the order received.
func (a *Aggregator) Records() []OutcomeRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]OutcomeRecord, len(a.records))
	copy(out, a.records)
	return out
}

// HasArtifacts reports whether at least one success with a persisted
// artifact exists.
func (a *Aggregator) HasArtifacts() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, rec := range a.records {
		if rec.Status == Success && rec.ArtifactPath != "" {
			return true
		}
	}
	return false
}

// Archive packages the artifact directory into a single zip, once per run.
// Returns storage.ErrNoArtifacts when nothing was captured; callers surface
// that as a warning, not a failure.
func (a *Aggregator) Archive() (string, error) {
	if !a.HasArtifacts() {
		a.logger.Warnf("Aggregator:Archive", "no screenshots were successfully generated")
		return "", storage.ErrNoArtifacts
	}
	return a.dirs.CreateArchive()
}

// Reset flushes the record log and both artifact directories, ready for a
// new batch.
func (a *Aggregator) Reset() error {
	a.mu.Lock()
	a.records = nil
	a.mu.Unlock()
	return a.dirs.Flush()
}
