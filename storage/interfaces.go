package storage

import "car-scraper/models"

// RawListingWriter persists listings exactly as scraped.
type RawListingWriter interface {
	WriteRaw(listings []*models.CarListing) error
	Close() error
}

// ListingWriter is the interface any normalised storage backend must satisfy.
type ListingWriter interface {
	Write(cars []*models.Car) error
	FetchAll() ([]*models.Car, error)
	Close() error
}
