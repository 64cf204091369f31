package capture

import (
	"context"
	"sync"

	"webshotter/log"
)

// Engine is the capture backend the coordinator schedules work on: one
// shared browser session plus the per-address capture operation.
type Engine interface {
	Start(ctx context.Context) error
	Stop()
	Capture(ctx context.Context, addr Address, index int) OutcomeRecord
}

// Observer receives progress events in completion order.
type Observer func(ProgressEvent)

// Coordinator fans capture tasks out over one engine and streams completion
// events as they arrive. Once started, a batch runs to completion for every
// submitted address; there is no abort path.
type Coordinator struct {
	engine  Engine
	logger  *log.Logger
	metrics *Metrics
	workers int
}

// NewCoordinator builds a coordinator with a bounded worker pool.
func NewCoordinator(engine Engine, workers int, metrics *Metrics, logger *log.Logger) *Coordinator {
	if workers <= 0 {
		workers = 1
	}
	return &Coordinator{
		engine:  engine,
		logger:  logger,
		metrics: metrics,
		workers: workers,
	}
}

type job struct {
	addr  Address
	index int // 1-based
}

// Run executes one batch. The observer, when non-nil, sees one event per
// address strictly in completion order, which is unrelated to input order.
// A browser launch failure aborts the whole batch before any task runs; no
// other error escapes, every address yields exactly one record.
func (c *Coordinator) Run(ctx context.Context, addrs []Address, observe Observer) (*BatchRun, error) {
	run := &BatchRun{Submitted: len(addrs)}
	if len(addrs) == 0 {
		return run, nil
	}

	c.logger.Infof("Coordinator:Run", "starting batch of %d", len(addrs))
	if err := c.engine.Start(ctx); err != nil {
		c.metrics.IncLaunchFailures()
		return nil, err
	}
	defer c.engine.Stop()

	workers := c.workers
	if workers > len(addrs) {
		workers = len(addrs)
	}

	jobs := make(chan job)
	results := make(chan OutcomeRecord)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- c.engine.Capture(ctx, j.addr, j.index)
			}
		}()
	}

	go func() {
		for i, addr := range addrs {
			jobs <- job{addr: addr, index: i + 1}
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	// Single consumer: this loop alone owns the run state, so records append
	// in receipt order without locks.
	for rec := range results {
		run.Completed++
		run.Records = append(run.Records, rec)
		c.metrics.ObserveCapture(rec.Status, rec.Duration)
		c.logger.Infof("Coordinator:Run", "[%d/%d] %s: %s",
			run.Completed, run.Submitted, rec.Address, rec.Status)
		if observe != nil {
			observe(ProgressEvent{Completed: run.Completed, Total: run.Submitted, Outcome: rec})
		}
	}

	c.metrics.IncBatches()
	c.logger.Infof("Coordinator:Run", "batch complete: %d/%d", run.Completed, run.Submitted)
	return run, nil
}
