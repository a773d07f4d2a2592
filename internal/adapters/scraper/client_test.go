package scraper_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/scraper"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

func sampleReq() domain.ScrapeRequest {
	return domain.ScrapeRequest{
		City: "Osaka", Country: "Japan",
		CheckIn: "2026-09-10", CheckOut: "2026-09-11",
		GroupAdults: 2, NumRooms: 1, SelectedCurrency: "JPY",
	}
}

func TestScrape_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/scrape" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req domain.ScrapeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.City != "Osaka" {
			t.Errorf("bad request body: %+v err=%v", req, err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"room_prices": []map[string]any{
				{
					"hotel": "Namba Stay", "room_price": 9800.0, "review_score": 8.2,
					"price_per_review": 1195.12, "check_in": "2026-09-10",
					"check_out": "2026-09-11", "as_of_date": "2026-09-01", "city": "Osaka",
				},
			},
		})
	}))
	defer ts.Close()

	cl := scraper.New(ts.URL, "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rows, err := cl.Scrape(ctx, sampleReq())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 || rows[0].Hotel != "Namba Stay" || rows[0].RoomPrice != 9800 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

// Older scraper builds answer with dataframe column names and without a
// precomputed price-per-review.
func TestScrape_LegacyColumnNames(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"room_prices": []map[string]any{
				{"Hotel": "Old Format Inn", "Price": 200.0, "Review": 8.0, "City": "Osaka"},
			},
		})
	}))
	defer ts.Close()

	cl := scraper.New(ts.URL, "", 100)
	rows, err := cl.Scrape(context.Background(), sampleReq())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 || rows[0].Hotel != "Old Format Inn" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[0].PricePerReview != 25 {
		t.Fatalf("price_per_review should be recomputed: %v", rows[0].PricePerReview)
	}
}

func TestScrape_NoResults(t *testing.T) {
	for name, handler := range map[string]http.HandlerFunc{
		"404": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"empty list": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"room_prices": []map[string]any{}})
		},
	} {
		ts := httptest.NewServer(handler)
		cl := scraper.New(ts.URL, "", 100)
		_, err := cl.Scrape(context.Background(), sampleReq())
		ts.Close()
		if !errors.Is(err, domain.ErrNoResults) {
			t.Fatalf("%s: expected ErrNoResults, got %v", name, err)
		}
	}
}

func TestScrape_ServerFaultIsNotRetried(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cl := scraper.New(ts.URL, "", 100)
	_, err := cl.Scrape(context.Background(), sampleReq())
	if err == nil || errors.Is(err, domain.ErrNoResults) || errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected generic server fault, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("a failed submission must not be retried; got %d calls", hits)
	}
}

func TestScrape_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // nothing listening anymore

	cl := scraper.New(ts.URL, "", 100)
	_, err := cl.Scrape(context.Background(), sampleReq())
	if !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}
