package capture

import (
	"context"

	"webshotter/browser"
	"webshotter/config"
	"webshotter/log"
	"webshotter/storage"
)

// BrowserEngine is the production Engine: a Chrome session shared by the
// batch, with one isolated browsing context per capture.
type BrowserEngine struct {
	session *browser.Session
	task    *Task
}

// NewBrowserEngine assembles the engine for one batch.
func NewBrowserEngine(cfg *config.Config, dirs storage.BatchDirs, logger *log.Logger) *BrowserEngine {
	return &BrowserEngine{
		session: browser.NewSession(cfg, logger),
		task:    NewTask(cfg, dirs, &storage.LocalFilePersister{}, logger),
	}
}

// Start launches the shared browser process.
func (e *BrowserEngine) Start(ctx context.Context) error {
	return e.session.Start(ctx)
}

// Stop tears the browser process down. Idempotent.
func (e *BrowserEngine) Stop() {
	e.session.Stop()
}

// Capture runs one task against an isolated context drawn from the session.
func (e *BrowserEngine) Capture(ctx context.Context, addr Address, index int) OutcomeRecord {
	return e.task.Run(ctx, sessionPages{e.session}, addr, index)
}

// sessionPages adapts the browser session to the task's PageFactory.
type sessionPages struct {
	session *browser.Session
}

func (p sessionPages) NewPage(ctx context.Context) (Page, error) {
	c, err := p.session.NewIsolatedContext(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}
