package geo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNominatimGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Islamabad" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q", got)
		}
		fmt.Fprint(w, `[{"lat": "33.6938", "lon": "73.0652"}]`)
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, 5*time.Second, slog.Default())
	p, found, err := c.Geocode(context.Background(), "Islamabad")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if !found {
		t.Fatal("expected a result")
	}
	if p.Lat != 33.6938 || p.Lon != 73.0652 {
		t.Errorf("point = %+v", p)
	}
}

func TestNominatimGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, 5*time.Second, slog.Default())
	_, found, err := c.Geocode(context.Background(), "Nowhereville")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if found {
		t.Error("empty result set should report not found, not an error")
	}
}

func TestNominatimGeocodeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, 5*time.Second, slog.Default())
	if _, _, err := c.Geocode(context.Background(), "x"); err == nil {
		t.Error("non-200 status should be an error")
	}
}

func TestCacheKeepsFailures(t *testing.T) {
	c := NewCache(0, 0)

	c.PutUnresolved("Atlantis")
	entry, ok := c.Get("Atlantis")
	if !ok {
		t.Fatal("failure should be cached")
	}
	if entry.Resolved {
		t.Error("cached failure should not look resolved")
	}

	c.PutResolved("Karachi", Point{Lat: 1, Lon: 2})
	entry, ok = c.Get("Karachi")
	if !ok || !entry.Resolved || entry.Point.Lat != 1 {
		t.Errorf("entry = %+v, ok = %v", entry, ok)
	}

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}
