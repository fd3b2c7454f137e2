// Package rod renders pages in headless Chrome for sites whose listings or
// chapters are filled in by JavaScript or sit behind a browser check.
package rod

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// DefaultRenderTimeout bounds a single render, navigation included.
const DefaultRenderTimeout = 15 * time.Second

// Ensure Renderer implements novelsrc.Renderer at compile time.
var _ novelsrc.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML using Chrome browser automation.
// Renders are serialized: one page is open at a time, and the browser is
// recycled after the manager's page budget.
type Renderer struct {
	manager     *BrowserManager
	timeout     time.Duration
	managerOpts []ManagerOption
	stealth     bool

	mu     sync.Mutex
	closed atomic.Bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderTimeout sets the timeout of a single render.
// Defaults to DefaultRenderTimeout if not specified.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithStealth toggles the evasion scripts that hide headless Chrome from
// bot checks. Enabled by default.
func WithStealth(enabled bool) Option {
	return func(r *Renderer) {
		r.stealth = enabled
	}
}

// WithBrowserOptions configures the underlying BrowserManager.
func WithBrowserOptions(opts ...ManagerOption) Option {
	return func(r *Renderer) {
		r.managerOpts = append(r.managerOpts, opts...)
	}
}

// NewRenderer launches a headless browser. Close must be called when the
// Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{timeout: DefaultRenderTimeout, stealth: true}
	for _, opt := range opts {
		opt(r)
	}

	manager, err := NewBrowserManager(r.managerOpts...)
	if err != nil {
		return nil, err
	}
	r.manager = manager

	return r, nil
}

// Render navigates to url, waits for the load event and returns the
// resulting DOM serialized as HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if r.closed.Load() {
		return "", novelsrc.Errorf(novelsrc.EINVALID, "renderer is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browser, release, err := r.manager.Acquire()
	if err != nil {
		return "", err
	}
	defer release()

	page, err := r.newPage(browser)
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

func (r *Renderer) newPage(browser *rod.Browser) (*rod.Page, error) {
	if r.stealth {
		return stealth.Page(browser)
	}
	return browser.Page(proto.TargetCreateTarget{})
}

// LauncherPID returns the process ID of the current browser launcher.
func (r *Renderer) LauncherPID() int {
	return r.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r.manager.Close()
}
