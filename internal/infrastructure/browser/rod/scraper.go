package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/infrastructure/browser/htmltext"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.ScrapePort = (*Scraper)(nil)

const (
	defaultTimeout  = 30 * time.Second
	defaultIdleWait = 2 * time.Second
)

type Config struct {
	Headless bool
	Timeout  time.Duration
	IdleWait time.Duration
	Logger   output.LoggerPort
}

func DefaultConfig() Config {
	return Config{
		Headless: true,
		Timeout:  defaultTimeout,
		IdleWait: defaultIdleWait,
	}
}

// Scraper renders pages in a headless Chrome and returns their visible text.
// The browser is started on first use.
type Scraper struct {
	cfg Config

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func NewScraper(cfg Config) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Scraper{cfg: cfg}
}

func (s *Scraper) connect() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return s.browser, nil
	}

	l := launcher.New().
		Headless(s.cfg.Headless).
		Delete("use-mock-keychain")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	s.browser = browser
	s.launcher = l
	return browser, nil
}

func (s *Scraper) Scrape(ctx context.Context, url string) (string, error) {
	browser, err := s.connect()
	if err != nil {
		return "", err
	}

	page, err := browser.Context(ctx).Timeout(s.cfg.Timeout).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("navigation failed: %w", err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("page did not load: %w", err)
	}
	if s.cfg.IdleWait > 0 {
		_ = page.WaitIdle(s.cfg.IdleWait)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}

	text, err := htmltext.Extract(html, nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("Page rendered", "url", url, "htmlBytes", len(html), "textBytes", len(text))
	}
	return text, nil
}

func (s *Scraper) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		_ = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
}
