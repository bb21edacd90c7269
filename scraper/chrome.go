package scraper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"car-scraper/models"
	"car-scraper/utils"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ChromeFetcher renders the page in headless Chrome and returns the DOM
// snapshot, for listing pages that only fill in their cards with JavaScript.
type ChromeFetcher struct {
	chromeBin string
	userAgent string
	timeout   time.Duration
	logger    *utils.Logger
}

// NewChromeFetcher creates a ChromeFetcher. An empty chromeBin triggers a
// lookup of common Chrome/Chromium install locations.
func NewChromeFetcher(chromeBin, userAgent string, timeout time.Duration, logger *utils.Logger) *ChromeFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if logger == nil {
		logger = utils.Discard()
	}
	return &ChromeFetcher{chromeBin: chromeBin, userAgent: userAgent, timeout: timeout, logger: logger}
}

func (c *ChromeFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(c.userAgent),
	)
	if c.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(c.chromeBin))
	}
	return opts
}

// Fetch navigates to rawURL, waits for <body> and returns the outer HTML.
func (c *ChromeFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	c.logger.Info("[chrome] Rendering %s with browser binary %q", rawURL, c.chromeBin)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome: render %s: %w: %v", rawURL, models.ErrFetchFailure, err)
	}
	return []byte(html), nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
