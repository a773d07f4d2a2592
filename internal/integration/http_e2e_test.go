//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/xuri/excelize/v2"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/excel"
	httpserver "github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/http_server"
	redisad "github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/redis"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/scraper"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/app"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

// memRepo keeps the scraping tables in memory so the full HTTP flow runs
// without a database. The MySQL repo has its own dockertest coverage.
type memRepo struct {
	prices  []domain.RoomPrice
	booking []domain.BookingDetails
}

func (m *memRepo) TruncateRoomPrices(ctx context.Context) error { m.prices = nil; return nil }
func (m *memRepo) SaveRoomPrices(ctx context.Context, rows []domain.RoomPrice) error {
	m.prices = append(m.prices, rows...)
	return nil
}
func (m *memRepo) ListRoomPrices(ctx context.Context) ([]domain.RoomPrice, error) {
	return m.prices, nil
}
func (m *memRepo) TruncateBookingDetails(ctx context.Context) error { m.booking = nil; return nil }
func (m *memRepo) SaveBookingDetails(ctx context.Context, bd domain.BookingDetails) error {
	m.booking = append(m.booking, bd)
	return nil
}
func (m *memRepo) ListBookingDetails(ctx context.Context) ([]domain.BookingDetails, error) {
	return m.booking, nil
}

func newServer(t *testing.T, scraperBase string) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	kv := redisad.New(mr.Addr(), "", 0)

	cmd := app.NewCommandService(kv, kv)
	q := app.NewQueryService(kv, kv, time.Minute)
	scr := app.NewScrapeService(scraper.New(scraperBase, "", 100), &memRepo{}, excel.NewWriter())

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Cmd: cmd, Q: q, Scr: scr})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

func TestEndToEnd_EntryFlow(t *testing.T) {
	ts := newServer(t, "http://127.0.0.1:0")

	// Two entries, the cheaper one wins.
	for _, in := range []map[string]string{
		{"name": "Luxury Palace", "price": "300", "rating": "9.5", "currency": "THB"},
		{"name": "Budget Inn", "price": "80", "rating": "7", "currency": "THB"},
	} {
		resp, body := post(t, ts.URL+"/v1/hotels", in)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add %s: %d %s", in["name"], resp.StatusCode, body)
		}
	}

	resp, err := http.Get(ts.URL + "/v1/hotels/rankings")
	if err != nil {
		t.Fatalf("GET rankings: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rankings status %d", resp.StatusCode)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("rankings response missing ETag")
	}

	var out struct {
		Count  int                  `json:"count"`
		Hotels []domain.RankedHotel `json:"hotels"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode rankings: %v", err)
	}
	if out.Count != 2 || out.Hotels[0].Name != "Budget Inn" || !out.Hotels[0].BestValue {
		t.Fatalf("unexpected rankings: %s", body)
	}
	if out.Hotels[1].Name != "Luxury Palace" || out.Hotels[1].Rank != 2 || out.Hotels[1].BestValue {
		t.Fatalf("unexpected runner-up: %s", body)
	}

	// Conditional GET with the same ETag short-circuits.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/hotels/rankings", nil)
	req.Header.Set("If-None-Match", etag)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", resp.StatusCode)
	}

	// The last used currency survives as the form default.
	resp, err = http.Get(ts.URL + "/v1/preferences/currency")
	if err != nil {
		t.Fatalf("GET currency: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !bytes.Contains(body, []byte(`"THB"`)) {
		t.Fatalf("expected THB preference, got %s", body)
	}

	// Clear, then the rankings render their empty state.
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/v1/hotels", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE hotels: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/v1/hotels/rankings")
	if err != nil {
		t.Fatalf("GET rankings: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	var empty struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(body, &empty)
	if empty.Count != 0 {
		t.Fatalf("expected empty rankings after clear: %s", body)
	}
}

func TestEndToEnd_ScrapeAndExport(t *testing.T) {
	scrapeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"room_prices": []map[string]any{
				{
					"hotel": "Canal House", "room_price": 180.0, "review_score": 8.9,
					"price_per_review": 20.22, "check_in": "2026-09-10",
					"check_out": "2026-09-11", "as_of_date": "2026-09-01", "city": "Amsterdam",
				},
			},
		})
	}))
	defer scrapeSrv.Close()

	ts := newServer(t, scrapeSrv.URL)

	resp, body := post(t, ts.URL+"/scraping/", map[string]any{
		"city": "Amsterdam", "country": "Netherlands",
		"check_in": "2026-09-10", "check_out": "2026-09-11",
		"group_adults": 2, "num_rooms": 1, "selected_currency": "EUR", "hotel_filter": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scraping status %d: %s", resp.StatusCode, body)
	}

	resp, body = post(t, ts.URL+"/save/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status %d: %s", resp.StatusCode, body)
	}
	var saved struct {
		Filename    string `json:"filename"`
		FileContent string `json:"file_content"`
	}
	if err := json.Unmarshal(body, &saved); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	if saved.Filename != "Amsterdam_hotel_data_2026-09-10_to_2026-09-11.xlsx" {
		t.Fatalf("filename: %q", saved.Filename)
	}

	raw, err := base64.StdEncoding.DecodeString(saved.FileContent)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Room Prices")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "Canal House" {
		t.Fatalf("unexpected workbook rows: %v", rows)
	}
}
