package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"car-scraper/models"
	"car-scraper/utils"
)

var (
	// priceRegexp captures the numeric part of a price label
	priceRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
	// seatsRegexp captures the leading seat count, e.g. "7 Seater"
	seatsRegexp = regexp.MustCompile(`(\d+)\s*seat`)
)

const (
	lakh  = 1e5
	crore = 1e7
)

// Cleaner transforms scraped CarListings into normalised Cars.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean normalises text, parses price and seat count, and drops listings
// without a model name as well as exact duplicates.
func (c *Cleaner) Clean(raw []*models.CarListing) []*models.Car {
	seen := make(map[string]struct{})
	result := make([]*models.Car, 0, len(raw))

	for _, r := range raw {
		model := normaliseText(r.Model)
		if model == "" {
			c.logger.Warn("[cleaner] Dropping listing without model: %s %s", r.Brand, r.Variant)
			continue
		}

		key := strings.Join(r.Row(), "\x1f")
		if _, dup := seen[key]; dup {
			c.logger.Debug("[cleaner] Duplicate listing skipped: %s %s", r.Brand, model)
			continue
		}
		seen[key] = struct{}{}

		result = append(result, &models.Car{
			Brand:            normaliseText(r.Brand),
			Model:            model,
			BodyType:         normaliseText(r.BodyType),
			Seats:            parseSeats(r.SeatCount),
			Variant:          normaliseText(r.Variant),
			Price:            c.parsePrice(r.Price),
			FuelType:         normaliseText(r.FuelType),
			TransmissionType: normaliseText(r.TransmissionType),
			ColourVariant:    normaliseText(r.ColourVariant),
			Location:         normaliseText(r.Location),
			CreatedAt:        time.Now(),
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice converts an Indian price label to rupees.
// Examples:
//
//	"₹10.29 Lakh"  → 1029000
//	"₹1.2 Crore"   → 12000000
//	"₹ 6,65,000"   → 665000
func (c *Cleaner) parsePrice(raw string) float64 {
	lower := strings.ToLower(strings.ReplaceAll(raw, ",", ""))
	match := priceRegexp.FindString(lower)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}

	switch {
	case strings.Contains(lower, "crore") || strings.Contains(lower, " cr"):
		value *= crore
	case strings.Contains(lower, "lakh") || strings.Contains(lower, "lac"):
		value *= lakh
	}
	c.logger.Debug("[cleaner] Price %q → %.2f", raw, value)
	return round2(value)
}

// parseSeats extracts the seat count from labels like "5 Seater".
func parseSeats(raw string) int {
	m := seatsRegexp.FindStringSubmatch(strings.ToLower(raw))
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
