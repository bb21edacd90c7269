// Package ackodrive extracts car listings from ACKO Drive collection pages.
package ackodrive

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"car-scraper/models"
	"car-scraper/utils"
)

// Parser turns a listing page into car listings.
type Parser struct {
	container      string
	rules          []Rule
	skipIncomplete bool
	logger         *utils.Logger
}

// Option customises a Parser.
type Option func(*Parser)

// WithRules replaces the default extraction rules.
func WithRules(rules []Rule) Option {
	return func(p *Parser) { p.rules = rules }
}

// WithContainerSelector replaces the listing card selector.
func WithContainerSelector(sel string) Option {
	return func(p *Parser) { p.container = sel }
}

// WithSkipIncomplete drops cards with missing fields instead of failing the
// whole parse.
func WithSkipIncomplete(skip bool) Option {
	return func(p *Parser) { p.skipIncomplete = skip }
}

// NewParser creates a Parser for the current ACKO Drive markup.
func NewParser(logger *utils.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = utils.Discard()
	}
	p := &Parser{
		container: ContainerSelector,
		rules:     DefaultRules(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts one listing per card, in page order. A page without cards
// yields an empty, non-nil slice.
//
// By default the first card missing a field aborts the parse with a
// *models.MissingFieldError. With WithSkipIncomplete the card is logged and
// dropped instead.
func (p *Parser) Parse(html []byte) ([]*models.CarListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse: read html: %w", err)
	}

	cards := doc.Find(p.container)
	listings := make([]*models.CarListing, 0, cards.Length())
	p.logger.Debug("[ackodrive] Found %d listing cards", cards.Length())

	for i := range cards.Nodes {
		listing, err := p.extract(cards.Eq(i), i)
		if err != nil {
			if p.skipIncomplete {
				p.logger.Warn("[ackodrive] Skipping listing %d: %v", i, err)
				continue
			}
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// extract builds the whole record before returning it, so a card is either
// appended with every field set or not at all.
func (p *Parser) extract(card *goquery.Selection, index int) (*models.CarListing, error) {
	listing := &models.CarListing{}
	for _, rule := range p.rules {
		value, ok := rule.Extract(card)
		if !ok {
			return nil, &models.MissingFieldError{
				Field:     rule.Field,
				Container: index,
				Selector:  rule.Describe(),
			}
		}
		listing.Set(rule.Field, value)
	}
	return listing, nil
}
