package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/observability"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

// Client calls the external scraping service. Each search is one request;
// failed submissions are terminal, never retried.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 90 * time.Second}, // scrapes are slow
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

type scrapeResponse struct {
	RoomPrices []map[string]any `json:"room_prices"`
}

// Scrape submits the search and returns the scraped rows. A search that
// completes with zero rows, or a 404 from the service, is ErrNoResults.
func (c *Client) Scrape(ctx context.Context, req domain.ScrapeRequest) ([]domain.RoomPrice, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := c.base + "/scrape"
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	if c.key != "" {
		hreq.Header.Set("X-API-Key", c.key)
	}

	start := time.Now()
	resp, err := c.hc.Do(hreq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		observability.ObserveExternal("scraper", "/scrape", 0, time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("scraper", "/scrape", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		var out scrapeResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode scrape response: %w", err)
		}
		rows := mapRoomPrices(out.RoomPrices)
		if len(rows) == 0 {
			return nil, domain.ErrNoResults
		}
		return rows, nil

	case http.StatusNotFound:
		return nil, domain.ErrNoResults

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("scraper: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
