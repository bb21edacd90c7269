package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"car-scraper/models"
)

// CSVWriter writes scraped listings to a CSV file: one header row with the
// field names, one row per listing, no index column.
//
// The file is only created by WriteRaw, so a run that fails earlier leaves
// any previous output untouched.
type CSVWriter struct {
	path string
}

// NewCSVWriter returns a writer targeting path. Nothing is touched on disk yet.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// WriteRaw writes the header and rows to a temporary file next to the target
// and renames it into place, so an existing file is only replaced by a
// complete one. Intermediate directories are created automatically.
func (c *CSVWriter) WriteRaw(listings []*models.CarListing) error {
	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	return replaceFile(c.path, func(w io.Writer) error {
		return writeListings(w, listings)
	})
}

// replaceFile atomically swaps path for the output of write. On any error the
// temporary file is removed and path is left as it was.
func replaceFile(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("csv: create temp file for %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("csv: chmod %q: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("csv: close %q: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("csv: replace %q: %w", path, err)
	}
	return nil
}

func writeListings(w io.Writer, listings []*models.CarListing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Header()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range listings {
		if err := cw.Write(l.Row()); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

// Close is a no-op; WriteRaw closes its files itself.
func (c *CSVWriter) Close() error {
	return nil
}

// ReadCSV loads listings previously written by CSVWriter.
func ReadCSV(path string) ([]*models.CarListing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	want := models.Header()
	if len(header) != len(want) {
		return nil, fmt.Errorf("csv: header has %d columns, want %d", len(header), len(want))
	}
	for i := range want {
		if header[i] != want[i] {
			return nil, fmt.Errorf("csv: header column %d is %q, want %q", i, header[i], want[i])
		}
	}

	listings := make([]*models.CarListing, 0)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		l, err := models.ListingFromRow(row)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}
