package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/novelsrc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of renders a browser serves before it is
// replaced. Chapter pages of novel sites carry heavy ad scripts and Chrome
// does not give that memory back.
const DefaultMaxPages = 40

// launchConfig describes how browsers are started.
type launchConfig struct {
	maxPages    int
	headless    bool
	proxy       string
	userDataDir string
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*launchConfig)

// WithMaxPages sets the number of renders before the browser is replaced.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int) ManagerOption {
	return func(c *launchConfig) {
		c.maxPages = n
	}
}

// WithHeadless toggles headless mode. A visible browser lets a person
// solve a site's bot check once per session.
func WithHeadless(enabled bool) ManagerOption {
	return func(c *launchConfig) {
		c.headless = enabled
	}
}

// WithProxy routes browser traffic through proxyURL.
func WithProxy(proxyURL string) ManagerOption {
	return func(c *launchConfig) {
		c.proxy = proxyURL
	}
}

// WithUserDataDir keeps the browser profile in dir, so cookies such as
// bot-check clearances survive restarts.
func WithUserDataDir(dir string) ManagerOption {
	return func(c *launchConfig) {
		c.userDataDir = dir
	}
}

// session is one running browser and the renders it has served.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int
	inFlight int
	retired  bool
}

func (s *session) close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// BrowserManager owns a Chrome process and replaces it once it has served
// its render budget. A retired browser stays open until its last render is
// released. BrowserManager is safe for concurrent use.
type BrowserManager struct {
	cfg launchConfig

	mu      sync.Mutex
	current *session
	closed  bool
}

// NewBrowserManager launches the first browser. Close must be called when
// the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	cfg := launchConfig{maxPages: DefaultMaxPages, headless: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxPages <= 0 {
		cfg.maxPages = DefaultMaxPages
	}

	s, err := launch(cfg)
	if err != nil {
		return nil, err
	}
	return &BrowserManager{cfg: cfg, current: s}, nil
}

// Acquire returns the browser for one render and the func that releases
// it. When the budget is spent a fresh browser is launched first; if the
// launch fails the old browser keeps serving.
func (m *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, nil, novelsrc.Errorf(novelsrc.EINVALID, "browser manager is closed")
	}
	if m.current.served >= m.cfg.maxPages {
		if next, err := launch(m.cfg); err == nil {
			m.retire(m.current)
			m.current = next
		}
	}

	s := m.current
	s.served++
	s.inFlight++

	var once sync.Once
	release := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			s.inFlight--
			if s.retired && s.inFlight == 0 {
				_ = s.close()
			}
		})
	}
	return s.browser, release, nil
}

// retire closes s now if it is idle, or after its last release.
// Must be called with mu held.
func (m *BrowserManager) retire(s *session) {
	s.retired = true
	if s.inFlight == 0 {
		_ = s.close()
	}
}

// Close shuts the current browser down. Renders still in flight fail.
// Close is safe to call multiple times.
func (m *BrowserManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.current.close()
}

// LauncherPID returns the process ID of the current browser launcher.
func (m *BrowserManager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.launcher.PID()
}

func launch(cfg launchConfig) (*session, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("mute-audio").
		Leakless(true).
		Headless(cfg.headless)
	if cfg.proxy != "" {
		l = l.Proxy(cfg.proxy)
	}
	if cfg.userDataDir != "" {
		l = l.UserDataDir(cfg.userDataDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &session{browser: browser, launcher: l}, nil
}
