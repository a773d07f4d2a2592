package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by read paths when the requested data is absent.
	ErrNotFound = errors.New("not found")
	// ErrNoResults means the scraper ran but found no places satisfying the
	// search. Surfaced to clients distinctly from server faults.
	ErrNoResults = errors.New("scraper: no results")
	// ErrUnreachable means no response reached the scraper service at all.
	ErrUnreachable = errors.New("scraper: unreachable")
)

// EntryStore is the key-value persistence boundary for the hotel entry list
// and the last-used-currency preference. The store performs no validation of
// its own; it trusts the caller.
type EntryStore interface {
	// Load returns the persisted list as raw JSON-array text, or nil when
	// nothing has been stored yet.
	Load(ctx context.Context) ([]byte, error)
	// Save overwrites the persisted list wholesale.
	Save(ctx context.Context, raw []byte) error
	// Clear removes the persisted list entirely. A subsequent Load returns
	// nil, which readers treat the same as an empty list.
	Clear(ctx context.Context) error

	LoadCurrencyPreference(ctx context.Context) (string, error)
	SaveCurrencyPreference(ctx context.Context, code string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// RoomPriceRepository persists the scraping variant's tables. Each scrape
// replaces the previous snapshot wholesale (truncate then insert).
type RoomPriceRepository interface {
	TruncateRoomPrices(ctx context.Context) error
	SaveRoomPrices(ctx context.Context, rows []RoomPrice) error
	ListRoomPrices(ctx context.Context) ([]RoomPrice, error)

	TruncateBookingDetails(ctx context.Context) error
	SaveBookingDetails(ctx context.Context, bd BookingDetails) error
	ListBookingDetails(ctx context.Context) ([]BookingDetails, error)
}

// ScraperClient talks to the external scraping service. A search is a single
// in-flight request with no retry; failures are terminal for that attempt.
type ScraperClient interface {
	Scrape(ctx context.Context, req ScrapeRequest) ([]RoomPrice, error)
}

// SpreadsheetWriter turns a room-price snapshot into workbook bytes.
type SpreadsheetWriter interface {
	Write(rows []RoomPrice) ([]byte, error)
}
