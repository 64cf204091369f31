// Package browser owns the shared Chrome process for one batch and hands out
// isolated browsing contexts to capture tasks.
package browser

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"

	"webshotter/chromium"
	"webshotter/config"
	"webshotter/log"
)

// SessionState tracks the lifecycle of the shared browser process.
type SessionState int32

const (
	Unstarted SessionState = iota
	Running
	Closed
)

// Session wraps one Chrome process. It is owned by a single batch and never
// shared across batches.
type Session struct {
	cfg    *config.Config
	logger *log.Logger

	mu          sync.Mutex
	state       SessionState
	allocCancel context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc
}

// NewSession returns an unstarted session.
func NewSession(cfg *config.Config, logger *log.Logger) *Session {
	return &Session{cfg: cfg, logger: logger}
}

// Start launches the Chrome process. It must be paired with Stop.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Unstarted {
		return LaunchError{Err: errors.Errorf("session already %s", s.state)}
	}

	cfg := *s.cfg
	if cfg.ExecutablePath == "" {
		path, err := chromium.FindExecutable()
		if err != nil {
			return LaunchError{Err: err}
		}
		cfg.ExecutablePath = path
	}
	s.logger.Debugf("Session:Start", "launching %s", cfg.ExecutablePath)

	// The allocator is parented to the background context so the process
	// outlives the Start call; Stop tears it down.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), chromium.AllocatorOptions(&cfg)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			s.logger.Debugf("Session:chromedp", format, args...)
		}),
	)

	launchCtx, cancel := context.WithTimeout(browserCtx, cfg.LaunchTimeout)
	defer cancel()
	if err := chromedp.Run(launchCtx); err != nil {
		browserCancel()
		allocCancel()
		return LaunchError{Err: err}
	}

	s.allocCancel = allocCancel
	s.browserCtx = browserCtx
	s.browserStop = browserCancel
	s.state = Running
	s.logger.Infof("Session:Start", "browser running")
	return nil
}

// Stop terminates the Chrome process. Idempotent, and a no-op when the
// session never started.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		if err := chromedp.Cancel(s.browserCtx); err != nil {
			s.logger.Warnf("Session:Stop", "closing browser: %v", err)
		}
		s.browserStop()
		s.allocCancel()
		s.logger.Infof("Session:Stop", "browser stopped")
	}
	s.state = Closed
}

// State reports the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NewIsolatedContext creates a browsing context with its own cookie jar,
// storage, and viewport, plus a fresh tab inside it. The user agent is drawn
// uniformly from the configured pool.
func (s *Session) NewIsolatedContext(ctx context.Context) (*Context, error) {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return nil, ContextError{Err: errors.New("session is not running")}
	}
	browserCtx := s.browserCtx
	s.mu.Unlock()

	ua := s.cfg.UserAgents[rand.IntN(len(s.cfg.UserAgents))]
	opts := NewContextOptions(s.cfg, ua)
	if err := opts.Validate(); err != nil {
		return nil, ContextError{Err: err}
	}

	c := chromedp.FromContext(browserCtx)
	executor := cdp.WithExecutor(ctx, c.Browser)

	bctxID, err := target.CreateBrowserContext().
		WithDisposeOnDetach(true).
		Do(executor)
	if err != nil {
		return nil, ContextError{Err: errors.Wrap(err, "creating browser context")}
	}

	tid, err := target.CreateTarget("about:blank").
		WithBrowserContextID(bctxID).
		Do(executor)
	if err != nil {
		_ = target.DisposeBrowserContext(bctxID).Do(executor)
		return nil, ContextError{Err: errors.Wrap(err, "creating target")}
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(tid))

	bc := &Context{
		opts:   opts,
		id:     bctxID,
		ctx:    tabCtx,
		cancel: tabCancel,
		parent: browserCtx,
		logger: s.logger,
	}
	if err := bc.configure(); err != nil {
		bc.Close()
		return nil, ContextError{Err: err}
	}

	s.logger.Debugf("Session:NewIsolatedContext", "context %s ua=%q", bctxID, ua)
	return bc, nil
}

func (st SessionState) String() string {
	switch st {
	case Unstarted:
		return "unstarted"
	case Running:
		return "running"
	case Closed:
		return "closed"
	}
	return "unknown"
}
