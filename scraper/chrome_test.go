package scraper

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"car-scraper/models"
)

func TestFindChromeBinaryPrefersEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	if got := findChromeBinary(); got != "/opt/custom/chrome" {
		t.Errorf("findChromeBinary() = %q; want /opt/custom/chrome", got)
	}
}

func TestNewChromeFetcherDefaults(t *testing.T) {
	f := NewChromeFetcher("/bin/chrome", "", 0, nil)
	if f.userAgent != defaultUserAgent {
		t.Errorf("userAgent: got %q", f.userAgent)
	}
	if f.timeout != DefaultFetchTimeout {
		t.Errorf("timeout: got %v, want %v", f.timeout, DefaultFetchTimeout)
	}
	// defaults, five flags, user agent and exec path
	if got, want := len(f.allocatorOptions()), len(chromedp.DefaultExecAllocatorOptions)+7; got != want {
		t.Errorf("allocator options: got %d, want %d", got, want)
	}
}

func TestChromeFetcherMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-chrome")
	f := NewChromeFetcher(missing, "", 2*time.Second, nil)

	_, err := f.Fetch(context.Background(), "https://example.com/")
	if !errors.Is(err, models.ErrFetchFailure) {
		t.Errorf("expected ErrFetchFailure, got %v", err)
	}
}
