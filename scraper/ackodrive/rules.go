package ackodrive

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"car-scraper/models"
)

// ContainerSelector matches one listing card on an ACKO Drive collection page.
const ContainerSelector = `div[data-testid="listingcardesktop"]`

// Rule extracts one field from a listing card.
//
// When Scope is set, the lookup is restricted to the first element matching
// Scope inside the card. Index picks the n-th match of Selector (zero-based).
// Transform post-processes the trimmed text; returning false marks the field
// as missing.
type Rule struct {
	Field     models.Field
	Scope     string
	Selector  string
	Index     int
	Transform func(text string) (string, bool)
}

// Extract applies the rule to card. ok is false when the node is absent.
func (r Rule) Extract(card *goquery.Selection) (value string, ok bool) {
	root := card
	if r.Scope != "" {
		root = card.Find(r.Scope).First()
		if root.Length() == 0 {
			return "", false
		}
	}

	matches := root.Find(r.Selector)
	if r.Index < 0 || r.Index >= matches.Length() {
		return "", false
	}

	text := strings.TrimSpace(matches.Eq(r.Index).Text())
	if r.Transform != nil {
		return r.Transform(text)
	}
	return text, true
}

// Describe renders the rule as a single selector string for error messages.
func (r Rule) Describe() string {
	sel := r.Selector
	if r.Scope != "" {
		sel = r.Scope + " " + sel
	}
	if r.Index > 0 {
		sel += ":eq(" + strconv.Itoa(r.Index) + ")"
	}
	return sel
}

// secondToken keeps the second whitespace-separated word. City labels render
// as "<label> <city>", e.g. "in Mumbai".
func secondToken(text string) (string, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

var (
	BrandRule = Rule{
		Field:    models.FieldBrand,
		Scope:    "h2",
		Selector: "span.styles__Make-sc-a6403e05-5.etWSJY",
	}
	ModelRule = Rule{
		Field:    models.FieldModel,
		Scope:    "h2",
		Selector: "span.styles__ModelName-sc-a6403e05-6.hGuUnc",
	}
	BodyTypeRule = Rule{
		Field:    models.FieldBodyType,
		Selector: `p[data-testid="car_model_body_type"]`,
	}
	SeatCountRule = Rule{
		Field:    models.FieldSeatCount,
		Selector: `p[data-testid="car_model_seat"]`,
	}
	VariantRule = Rule{
		Field:    models.FieldVariant,
		Selector: "h3",
	}
	PriceRule = Rule{
		Field:    models.FieldPrice,
		Selector: "div.styles__Price-sc-a6403e05-18.bsWAfs",
	}
	FuelTypeRule = Rule{
		Field:    models.FieldFuelType,
		Selector: `p[data-testid="car_variant_fuel_type"]`,
	}
	TransmissionTypeRule = Rule{
		Field:    models.FieldTransmissionType,
		Selector: `p[data-testid="car_variant_transmission"]`,
	}
	// The card reuses this class for several unrelated paragraphs; the colour
	// count is the sixth one.
	ColourVariantRule = Rule{
		Field:    models.FieldColourVariant,
		Selector: "p.styles__ParaWithoutMargins-sc-a6403e05-34.iAPjDz",
		Index:    5,
	}
	LocationRule = Rule{
		Field:     models.FieldLocation,
		Selector:  "div.styles__CityName-sc-a6403e05-17.fZrHFu",
		Transform: secondToken,
	}
)

// DefaultRules returns the rule set for the current ACKO Drive markup, one
// rule per field in column order.
func DefaultRules() []Rule {
	return []Rule{
		BrandRule,
		ModelRule,
		BodyTypeRule,
		SeatCountRule,
		VariantRule,
		PriceRule,
		FuelTypeRule,
		TransmissionTypeRule,
		ColourVariantRule,
		LocationRule,
	}
}
