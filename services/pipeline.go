package services

import (
	"context"
	"errors"
	"fmt"

	"car-scraper/models"
	"car-scraper/scraper"
	"car-scraper/storage"
	"car-scraper/utils"
)

// State is a step of a pipeline run.
type State int

const (
	StateStart State = iota
	StateValidating
	StateProbing
	StateFetching
	StateParsing
	StateSaved
	StateInvalidURL
	StateUnreachable
	StateFetchFailed
	StateParseFailed
	StateSinkFailed
	StateFailed
)

var stateNames = [...]string{
	StateStart:       "START",
	StateValidating:  "VALIDATING",
	StateProbing:     "PROBING",
	StateFetching:    "FETCHING",
	StateParsing:     "PARSING",
	StateSaved:       "SAVED",
	StateInvalidURL:  "INVALID_URL",
	StateUnreachable: "UNREACHABLE",
	StateFetchFailed: "FETCH_FAILED",
	StateParseFailed: "PARSE_FAILED",
	StateSinkFailed:  "SINK_FAILED",
	StateFailed:      "FAILED",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// TerminalState maps the error returned by Run to the state the run ended in.
// Errors outside the models.Err* classes map to StateFailed.
func TerminalState(err error) State {
	switch {
	case err == nil:
		return StateSaved
	case errors.Is(err, models.ErrMalformedURL):
		return StateInvalidURL
	case errors.Is(err, models.ErrUnreachable):
		return StateUnreachable
	case errors.Is(err, models.ErrFetchFailure):
		return StateFetchFailed
	case errors.Is(err, models.ErrParseFailure), errors.Is(err, models.ErrMissingField):
		return StateParseFailed
	case errors.Is(err, models.ErrSinkFailure):
		return StateSinkFailed
	}
	return StateFailed
}

// ReachabilityProber reports whether a URL can be scraped.
type ReachabilityProber interface {
	IsReachable(ctx context.Context, rawURL string) bool
}

// ListingParser extracts listings from page HTML.
type ListingParser interface {
	Parse(html []byte) ([]*models.CarListing, error)
}

// Pipeline runs validate → probe → fetch → parse → save for one URL.
// It holds no per-run state; each Run is independent.
type Pipeline struct {
	prober  ReachabilityProber
	fetcher scraper.PageFetcher
	parser  ListingParser
	logger  *utils.Logger
}

func NewPipeline(prober ReachabilityProber, fetcher scraper.PageFetcher, parser ListingParser, logger *utils.Logger) *Pipeline {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Pipeline{prober: prober, fetcher: fetcher, parser: parser, logger: logger}
}

// Run scrapes rawURL and hands the listings to sink. Nothing is written to
// sink unless every earlier step succeeded. The returned error wraps one of
// the models.Err* failure classes.
func (p *Pipeline) Run(ctx context.Context, rawURL string, sink storage.RawListingWriter) ([]*models.CarListing, error) {
	p.enter(StateValidating, rawURL)
	if !scraper.IsValidURL(rawURL) {
		return nil, p.fail(StateInvalidURL, fmt.Errorf("pipeline: %q: %w", rawURL, models.ErrMalformedURL))
	}

	p.enter(StateProbing, rawURL)
	if !p.prober.IsReachable(ctx, rawURL) {
		return nil, p.fail(StateUnreachable, fmt.Errorf("pipeline: %s: %w", rawURL, models.ErrUnreachable))
	}

	p.enter(StateFetching, rawURL)
	html, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if !errors.Is(err, models.ErrFetchFailure) {
			err = fmt.Errorf("%w: %w", models.ErrFetchFailure, err)
		}
		return nil, p.fail(StateFetchFailed, fmt.Errorf("pipeline: %w", err))
	}
	p.logger.Debug("[pipeline] Fetched %d bytes", len(html))

	p.enter(StateParsing, rawURL)
	listings, err := p.parser.Parse(html)
	if err != nil {
		return nil, p.fail(StateParseFailed, fmt.Errorf("pipeline: %w: %w", models.ErrParseFailure, err))
	}
	p.logger.Info("[pipeline] Parsed %d listings", len(listings))

	if err := sink.WriteRaw(listings); err != nil {
		return nil, p.fail(StateSinkFailed, fmt.Errorf("pipeline: %w: %w", models.ErrSinkFailure, err))
	}
	p.enter(StateSaved, rawURL)

	return listings, nil
}

func (p *Pipeline) enter(s State, rawURL string) {
	p.logger.Debug("[pipeline] %s %s", s, rawURL)
}

func (p *Pipeline) fail(s State, err error) error {
	p.logger.Error("[pipeline] %s: %v", s, err)
	return err
}
