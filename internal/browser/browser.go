package browser

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session wraps a persistent Chromium context. The user-data directory
// carries cookies and local storage across runs, so a manual login survives
// restarts. A session is owned by exactly one run at a time.
type Session struct {
	pw      *playwright.Playwright
	context playwright.BrowserContext
	page    playwright.Page
	opts    *Options
	logger  *slog.Logger
}

type Options struct {
	Headless        bool
	UserDataDir     string
	SlowMo          time.Duration
	PageLoadTimeout time.Duration
	ViewportWidth   int
	ViewportHeight  int
	Locale          string
}

func DefaultOptions() *Options {
	return &Options{
		Headless:        false,
		UserDataDir:     "./ozon_browser_data",
		SlowMo:          100 * time.Millisecond,
		PageLoadTimeout: 60 * time.Second,
		ViewportWidth:   1920,
		ViewportHeight:  1080,
		Locale:          "ru-RU",
	}
}

func New(opts *Options) (*Session, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	context, err := pw.Chromium.LaunchPersistentContext(opts.UserDataDir, playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
		Locale:   playwright.String(opts.Locale),
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch persistent context: %w", err)
	}

	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			context.Close()
			pw.Stop()
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
	}

	page.SetDefaultTimeout(float64(opts.PageLoadTimeout.Milliseconds()))

	return &Session{
		pw:      pw,
		context: context,
		page:    page,
		opts:    opts,
		logger:  slog.Default().With("component", "browser"),
	}, nil
}

func (s *Session) Page() playwright.Page {
	return s.page
}

func (s *Session) Goto(url string) error {
	s.logger.Debug("navigating", "url", url)
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(s.opts.PageLoadTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitForLoad waits for the network to go idle. A timeout here is not an
// error: heavy marketplace pages keep background traffic open for a long
// time while the content is already usable.
func (s *Session) WaitForLoad() {
	err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(s.opts.PageLoadTimeout.Milliseconds())),
	})
	if err != nil {
		s.logger.Debug("load state wait timed out", "error", err)
	}
}

func (s *Session) Screenshot() ([]byte, error) {
	shot, err := s.page.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}
	return shot, nil
}

// Close releases every browser resource. It runs on all exit paths and
// aggregates errors instead of stopping at the first one.
func (s *Session) Close() error {
	var errs []error

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}

	return nil
}
