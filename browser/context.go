package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/security"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"

	"webshotter/log"
)

// Context is an isolated browsing sandbox: its own cookie jar, storage, user
// agent, and viewport, living in a dedicated CDP browser context with one
// tab. Exactly one capture task uses it, and it is never reused.
type Context struct {
	opts   ContextOptions
	id     cdp.BrowserContextID
	ctx    context.Context
	cancel context.CancelFunc
	parent context.Context
	logger *log.Logger

	closeOnce sync.Once
}

func (c *Context) configure() error {
	actions := []chromedp.Action{
		network.Enable(),
		network.SetBlockedURLs(c.opts.BlockedURLs),
		emulation.SetUserAgentOverride(c.opts.UserAgent),
		chromedp.EmulateViewport(int64(c.opts.ViewportWidth), int64(c.opts.ViewportHeight)),
		emulation.SetScriptExecutionDisabled(!c.opts.JavaScriptEnabled),
	}
	if c.opts.IgnoreHTTPSErrors {
		actions = append(actions, security.SetIgnoreCertificateErrors(true))
	}
	if err := chromedp.Run(c.ctx, actions...); err != nil {
		return errors.Wrap(err, "configuring context")
	}
	return nil
}

// Navigate loads the address and returns once the DOM has been parsed. It
// deliberately does not wait for network idle so slow trackers cannot stall
// a capture; the settle delay and scroll pass cover late content.
func (c *Context) Navigate(address string) error {
	navCtx, cancel := context.WithTimeout(c.ctx, c.opts.NavigationTimeout)
	defer cancel()

	domReady := make(chan struct{}, 1)
	lctx, lcancel := context.WithCancel(c.ctx)
	defer lcancel()
	chromedp.ListenTarget(lctx, func(ev any) {
		if _, ok := ev.(*page.EventDomContentEventFired); ok {
			select {
			case domReady <- struct{}{}:
			default:
			}
			lcancel()
		}
	})

	err := chromedp.Run(navCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, _, errText, err := page.Navigate(address).Do(ctx)
		if err != nil {
			return err
		}
		if errText != "" {
			return errors.New(errText)
		}
		return nil
	}))
	if err != nil {
		return NavigationError{Err: err, Timeout: errors.Is(err, context.DeadlineExceeded)}
	}

	select {
	case <-domReady:
		return nil
	case <-navCtx.Done():
		return NavigationError{Err: navCtx.Err(), Timeout: true}
	}
}

// ScrollHeight measures the current scrollable height of the document.
func (c *Context) ScrollHeight() (int64, error) {
	var height int64
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(`document.body.scrollHeight`, &height)); err != nil {
		return 0, errors.Wrap(err, "measuring scroll height")
	}
	return height, nil
}

// ScrollByViewport scrolls down by one viewport height.
func (c *Context) ScrollByViewport() error {
	if err := chromedp.Run(c.ctx, chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil)); err != nil {
		return errors.Wrap(err, "scrolling")
	}
	return nil
}

// CaptureFullPage rasterizes the entire scrollable page area as a PNG.
func (c *Context) CaptureFullPage() ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(c.ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, CaptureError{Err: err}
	}
	return buf, nil
}

// Close releases the tab and disposes the underlying CDP browser context.
// Safe to call more than once.
func (c *Context) Close() {
	c.closeOnce.Do(func() {
		c.cancel()

		if c.id == "" {
			return
		}
		// The tab detach already disposes the context (DisposeOnDetach);
		// the explicit dispose covers engines that lag behind on detach.
		disposeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		br := chromedp.FromContext(c.parent).Browser
		if err := target.DisposeBrowserContext(c.id).Do(cdp.WithExecutor(disposeCtx, br)); err != nil {
			c.logger.Debugf("Context:Close", "disposing context %s: %v", c.id, err)
		}
	})
}
