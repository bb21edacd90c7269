package storage

import (
	"strings"
	"testing"

	"car-scraper/models"
)

func TestBuildInsertPlaceholders(t *testing.T) {
	batch := []*models.Car{
		{Brand: "Tata", Model: "Nexon", Seats: 5, Price: 1029000},
		{Brand: "Tata", Model: "Punch EV", Seats: 5, Price: 1429000},
	}

	query, args := buildInsert(batch)

	if len(args) != 2*carColumns {
		t.Errorf("args: got %d, want %d", len(args), 2*carColumns)
	}
	if !strings.Contains(query, "($1,$2,$3,$4,$5,$6,$7,$8,$9,$10),($11,") {
		t.Errorf("unexpected placeholders in %s", query)
	}
	if !strings.HasSuffix(query, "$20)") {
		t.Errorf("query should end at $20: %s", query)
	}
	if args[carColumns+1] != "Punch EV" {
		t.Errorf("second row model arg: got %v", args[carColumns+1])
	}
	if args[5] != float64(1029000) {
		t.Errorf("first row price arg: got %v", args[5])
	}
}

func makeCars(n int) []*models.Car {
	cars := make([]*models.Car, n)
	for i := range cars {
		cars[i] = &models.Car{Brand: "Tata", Model: "Nexon", Seats: 5, Price: float64(i)}
	}
	return cars
}

func TestSplitBatchesBoundary(t *testing.T) {
	tests := []struct {
		n         int
		wantSizes []int
	}{
		{0, nil},
		{1, []int{1}},
		{50, []int{50}},
		{51, []int{50, 1}},
		{120, []int{50, 50, 20}},
	}

	for _, tt := range tests {
		batches := splitBatches(makeCars(tt.n), batchSize)
		if len(batches) != len(tt.wantSizes) {
			t.Errorf("n=%d: got %d batches, want %d", tt.n, len(batches), len(tt.wantSizes))
			continue
		}
		for i, b := range batches {
			if len(b) != tt.wantSizes[i] {
				t.Errorf("n=%d batch %d: got %d cars, want %d", tt.n, i, len(b), tt.wantSizes[i])
			}
		}
	}
}

func TestBuildInsertAcrossBatchBoundary(t *testing.T) {
	batches := splitBatches(makeCars(51), batchSize)

	first, firstArgs := buildInsert(batches[0])
	if len(firstArgs) != 50*carColumns {
		t.Errorf("first batch args: got %d, want %d", len(firstArgs), 50*carColumns)
	}
	if !strings.HasSuffix(first, "$500)") {
		t.Errorf("first batch should end at $500: ...%s", first[len(first)-20:])
	}

	second, secondArgs := buildInsert(batches[1])
	if len(secondArgs) != carColumns {
		t.Errorf("second batch args: got %d, want %d", len(secondArgs), carColumns)
	}
	if !strings.HasSuffix(second, "VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)") {
		t.Errorf("second batch should restart placeholders at $1: %s", second)
	}
	if secondArgs[5] != float64(50) {
		t.Errorf("second batch should hold car 50, got price %v", secondArgs[5])
	}
}
