package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"car-scraper/utils"
)

func statusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("probe used %s, want HEAD", r.Method)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProberStatusPolicy(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, false},
		{http.StatusAccepted, false},
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
		{http.StatusInternalServerError, false},
	}

	p := NewProber(time.Second, utils.Discard())
	for _, tt := range tests {
		srv := statusServer(t, tt.status)
		if got := p.IsReachable(context.Background(), srv.URL); got != tt.want {
			t.Errorf("status %d: got %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRedirectIsUnreachable(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("redirect target should never be requested, got %s %s", r.Method, r.URL)
		w.WriteHeader(http.StatusOK)
	}))
	defer final.Close()

	p := NewProber(time.Second, utils.Discard())
	for _, status := range []int{http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect} {
		redirect := httptest.NewServer(http.RedirectHandler(final.URL, status))
		if p.IsReachable(context.Background(), redirect.URL) {
			t.Errorf("HEAD answered %d: got reachable, want unreachable", status)
		}
		redirect.Close()
	}
}

func TestProberTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber(50*time.Millisecond, utils.Discard())
	if p.IsReachable(context.Background(), srv.URL) {
		t.Error("slow server should be reported unreachable")
	}
}

func TestProberConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	if IsReachable(addr, 500) {
		t.Errorf("closed server %s should be unreachable", addr)
	}
}

func TestProberUnresolvableHost(t *testing.T) {
	if IsReachable("https://example.invalid/", 2000) {
		t.Error(".invalid host should never be reachable")
	}
}
