package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"car-scraper/models"
	"car-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(cars []*models.Car) *models.InsightReport {
	report := &models.InsightReport{
		ByFuelType:         make(map[string]int),
		ByBodyType:         make(map[string]int),
		ByTransmission:     make(map[string]int),
		ListingsByLocation: make(map[string]int),
	}

	if len(cars) == 0 {
		return report
	}

	report.TotalListings = len(cars)

	var priced []*models.Car
	for _, c := range cars {
		if c.Price > 0 {
			priced = append(priced, c)
		}
		countNonEmpty(report.ByFuelType, c.FuelType)
		countNonEmpty(report.ByBodyType, c.BodyType)
		countNonEmpty(report.ByTransmission, c.TransmissionType)
		countNonEmpty(report.ListingsByLocation, c.Location)
	}

	// Price stats (only listings with price > 0)
	if len(priced) > 0 {
		report.Cheapest = priced[0]
		report.MostExpensive = priced[0]
		var total float64
		for _, c := range priced {
			total += c.Price
			if c.Price < report.Cheapest.Price {
				report.Cheapest = c
			}
			if c.Price > report.MostExpensive.Price {
				report.MostExpensive = c
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
		report.MinPrice = round2(report.Cheapest.Price)
		report.MaxPrice = round2(report.MostExpensive.Price)
	}

	s.logger.Debug("[insights] %d listings, %d with a price", report.TotalListings, len(priced))
	return report
}

func countNonEmpty(m map[string]int, key string) {
	if key != "" {
		m[key]++
	}
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🚗 CAR LISTING INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Total listings scraped : \033[1m%d\033[0m\n\n", r.TotalListings)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m₹%s\033[0m\n", formatRupees(r.AveragePrice))
		fmt.Fprintf(w, "  Minimum price : \033[1;32m₹%s\033[0m  %s\n", formatRupees(r.MinPrice), carName(r.Cheapest))
		fmt.Fprintf(w, "  Maximum price : \033[1;32m₹%s\033[0m  %s\n", formatRupees(r.MaxPrice), carName(r.MostExpensive))
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	printBreakdown(w, "By Fuel Type", r.ByFuelType, thin)
	printBreakdown(w, "By Body Type", r.ByBodyType, thin)
	printBreakdown(w, "By Transmission", r.ByTransmission, thin)
	printBreakdown(w, "Listings by Location", r.ListingsByLocation, thin)

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func printBreakdown(w io.Writer, title string, counts map[string]int, thin string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  No data\n\n")
		return
	}
	for _, kc := range sortedCounts(counts) {
		bar := strings.Repeat("█", kc.count)
		fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(kc.key, 28), bar, kc.count)
	}
	fmt.Fprintln(w)
}

type keyCount struct {
	key   string
	count int
}

// sortedCounts orders by count descending, then key ascending.
func sortedCounts(m map[string]int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, c := range m {
		out = append(out, keyCount{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

func carName(c *models.Car) string {
	if c == nil {
		return ""
	}
	return truncate(strings.TrimSpace(c.Brand+" "+c.Model+" "+c.Variant), 40)
}

// formatRupees renders whole rupees with lakh-style grouping: 1429000 → "14,29,000".
func formatRupees(v float64) string {
	s := fmt.Sprintf("%d", int64(v+0.5))
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
