package scraper

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"car-scraper/utils"
)

// DefaultProbeTimeout bounds the reachability check when no timeout is given.
const DefaultProbeTimeout = 5 * time.Second

// Prober decides whether a page can be scraped by issuing a single HEAD request.
type Prober struct {
	client *resty.Client
	logger *utils.Logger
}

// NewProber creates a Prober whose requests give up after timeout.
func NewProber(timeout time.Duration, logger *utils.Logger) *Prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if logger == nil {
		logger = utils.Discard()
	}
	return &Prober{
		client: resty.New().
			SetTimeout(timeout).
			SetRedirectPolicy(resty.NoRedirectPolicy()),
		logger: logger,
	}
}

// IsReachable returns true only when the server answers the HEAD request with
// exactly 200 OK. Redirects are not followed, so a 3xx is unreachable too.
// Any transport failure is logged and reported as false.
func (p *Prober) IsReachable(ctx context.Context, rawURL string) bool {
	res, err := p.client.R().SetContext(ctx).Head(rawURL)
	if err != nil {
		p.logger.Debug("[probe] HEAD %s failed: %v", rawURL, err)
		return false
	}
	if res.StatusCode() != http.StatusOK {
		p.logger.Debug("[probe] HEAD %s returned %d", rawURL, res.StatusCode())
		return false
	}
	return true
}

// IsReachable is a one-shot probe with a millisecond timeout.
func IsReachable(rawURL string, timeoutMs int) bool {
	p := NewProber(time.Duration(timeoutMs)*time.Millisecond, nil)
	return p.IsReachable(context.Background(), rawURL)
}
