package models

import (
	"fmt"
	"time"
)

// Field identifies one column of a scraped car listing.
type Field int

const (
	FieldBrand Field = iota
	FieldModel
	FieldBodyType
	FieldSeatCount
	FieldVariant
	FieldPrice
	FieldFuelType
	FieldTransmissionType
	FieldColourVariant
	FieldLocation
)

// Fields lists every column in declaration (and CSV) order.
var Fields = []Field{
	FieldBrand,
	FieldModel,
	FieldBodyType,
	FieldSeatCount,
	FieldVariant,
	FieldPrice,
	FieldFuelType,
	FieldTransmissionType,
	FieldColourVariant,
	FieldLocation,
}

var fieldNames = [...]string{
	FieldBrand:            "brand",
	FieldModel:            "model",
	FieldBodyType:         "body_type",
	FieldSeatCount:        "seat_count",
	FieldVariant:          "variant",
	FieldPrice:            "price",
	FieldFuelType:         "fuel_type",
	FieldTransmissionType: "transmission_type",
	FieldColourVariant:    "colour_variant",
	FieldLocation:         "location",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Header returns the CSV header row.
func Header() []string {
	h := make([]string, len(Fields))
	for i, f := range Fields {
		h[i] = f.String()
	}
	return h
}

// CarListing holds one listing card exactly as scraped from the page.
// Every value is kept as text; normalisation happens in the cleaner.
type CarListing struct {
	Brand            string
	Model            string
	BodyType         string
	SeatCount        string
	Variant          string
	Price            string
	FuelType         string
	TransmissionType string
	ColourVariant    string
	Location         string
}

func (c *CarListing) ref(f Field) *string {
	switch f {
	case FieldBrand:
		return &c.Brand
	case FieldModel:
		return &c.Model
	case FieldBodyType:
		return &c.BodyType
	case FieldSeatCount:
		return &c.SeatCount
	case FieldVariant:
		return &c.Variant
	case FieldPrice:
		return &c.Price
	case FieldFuelType:
		return &c.FuelType
	case FieldTransmissionType:
		return &c.TransmissionType
	case FieldColourVariant:
		return &c.ColourVariant
	case FieldLocation:
		return &c.Location
	}
	return nil
}

// Set assigns the value of a single field. Unknown fields are ignored.
func (c *CarListing) Set(f Field, value string) {
	if p := c.ref(f); p != nil {
		*p = value
	}
}

// Get returns the value of a single field.
func (c *CarListing) Get(f Field) string {
	if p := c.ref(f); p != nil {
		return *p
	}
	return ""
}

// Row returns the listing as a CSV row in header order.
func (c *CarListing) Row() []string {
	row := make([]string, len(Fields))
	for i, f := range Fields {
		row[i] = c.Get(f)
	}
	return row
}

// ListingFromRow is the inverse of Row.
func ListingFromRow(row []string) (*CarListing, error) {
	if len(row) != len(Fields) {
		return nil, fmt.Errorf("listing: row has %d columns, want %d", len(row), len(Fields))
	}
	l := &CarListing{}
	for i, f := range Fields {
		l.Set(f, row[i])
	}
	return l, nil
}

// Car is the normalised record ready for PostgreSQL storage.
type Car struct {
	ID               int64
	Brand            string
	Model            string
	BodyType         string
	Seats            int
	Variant          string
	Price            float64 // INR
	FuelType         string
	TransmissionType string
	ColourVariant    string
	Location         string
	CreatedAt        time.Time
}

// InsightReport holds the computed analytics over the cleaned dataset.
type InsightReport struct {
	TotalListings      int
	AveragePrice       float64
	MinPrice           float64
	MaxPrice           float64
	Cheapest           *Car
	MostExpensive      *Car
	ByFuelType         map[string]int
	ByBodyType         map[string]int
	ByTransmission     map[string]int
	ListingsByLocation map[string]int
}
