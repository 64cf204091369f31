package capture

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"webshotter/config"
	"webshotter/log"
	"webshotter/storage"
)

// Page is the per-task surface of an isolated browsing context.
type Page interface {
	Scroller
	Navigate(address string) error
	CaptureFullPage() ([]byte, error)
	Close()
}

// PageFactory hands out isolated pages, one per task.
type PageFactory interface {
	NewPage(ctx context.Context) (Page, error)
}

// unsafeChars are stripped from artifact names; every occurrence becomes an
// underscore.
const unsafeChars = `:/\?*&"<>|`

// ArtifactName derives the filesystem-safe artifact filename for an address.
// The scheme is dropped and every unsafe character replaced, so distinct
// addresses can collide; the 1-based index prefix keeps names pairwise
// distinct anyway.
func ArtifactName(index int, addr Address) string {
	s := string(addr)
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[i+2:]
	}
	safe := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return '_'
		}
		return r
	}, s)
	return fmt.Sprintf("%d_%s.png", index, safe)
}

// Task produces exactly one OutcomeRecord for one address. Every failure is
// captured into the record; nothing escapes the task boundary.
type Task struct {
	cfg       *config.Config
	dirs      storage.BatchDirs
	persister storage.FilePersister
	logger    *log.Logger
	sleep     func(time.Duration)
}

// NewTask wires a task runner against the artifact store.
func NewTask(cfg *config.Config, dirs storage.BatchDirs, persister storage.FilePersister, logger *log.Logger) *Task {
	return &Task{
		cfg:       cfg,
		dirs:      dirs,
		persister: persister,
		logger:    logger,
		sleep:     time.Sleep,
	}
}

// Run captures one address. index is 1-based and becomes the artifact name
// prefix. The browsing context is always released, whatever the outcome.
func (t *Task) Run(ctx context.Context, pages PageFactory, addr Address, index int) OutcomeRecord {
	start := time.Now()
	fail := func(err error) OutcomeRecord {
		t.logger.Warnf("Task:Run", "%s: %v", addr, err)
		return OutcomeRecord{
			Address:      addr,
			Status:       Failure,
			ErrorSummary: summarize(err),
			Duration:     time.Since(start),
		}
	}

	page, err := pages.NewPage(ctx)
	if err != nil {
		return fail(err)
	}
	defer page.Close()

	if err := page.Navigate(string(addr)); err != nil {
		return fail(err)
	}

	// Give immediate post-load scripts a moment before scrolling.
	t.sleep(t.settleDelay())

	settler := Settler{MaxScrolls: t.cfg.MaxScrolls, Pause: t.cfg.ScrollPause, Sleep: t.sleep}
	if err := settler.Settle(page); err != nil {
		return fail(err)
	}

	buf, err := page.CaptureFullPage()
	if err != nil {
		return fail(err)
	}

	path := t.dirs.ArtifactPath(ArtifactName(index, addr))
	if err := t.persister.Persist(ctx, path, bytes.NewReader(buf)); err != nil {
		return fail(err)
	}

	t.logger.Debugf("Task:Run", "%s captured to %s", addr, path)
	return OutcomeRecord{
		Address:      addr,
		Status:       Success,
		ArtifactPath: path,
		Duration:     time.Since(start),
	}
}

// settleDelay samples uniformly from [SettleDelayMin, SettleDelayMax].
func (t *Task) settleDelay() time.Duration {
	spread := t.cfg.SettleDelayMax - t.cfg.SettleDelayMin
	if spread <= 0 {
		return t.cfg.SettleDelayMin
	}
	return t.cfg.SettleDelayMin + time.Duration(rand.Int64N(int64(spread)))
}
