package scraper

import "testing"

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://ackodrive.com/collection/tata-cars/", true},
		{"http://example.com", true},
		{"https://example.com:8443/a?b=c#d", true},
		{"ftp://files.example.com/x", true},
		{"not a url", false},
		{"", false},
		{"example.com/path", false},
		{"//example.com/no-scheme", false},
		{"https://", false},
		{"https:///only-path", false},
		{"mailto:someone@example.com", false},
		{"http://[::1", false},
		{"://missing-scheme.com", false},
	}

	for _, tt := range tests {
		if got := IsValidURL(tt.raw); got != tt.want {
			t.Errorf("IsValidURL(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}
