package app

import (
	"context"
	"fmt"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

// ScrapeService drives the scraping variant: submit a search to the external
// scraper, persist the snapshot, serve it back, export it as a workbook.
type ScrapeService struct {
	scraper domain.ScraperClient
	repo    domain.RoomPriceRepository
	sheets  domain.SpreadsheetWriter
}

func NewScrapeService(sc domain.ScraperClient, repo domain.RoomPriceRepository, sheets domain.SpreadsheetWriter) *ScrapeService {
	return &ScrapeService{scraper: sc, repo: repo, sheets: sheets}
}

// Run replaces both tables with the outcome of a single search. Booking
// details are recorded before the scrape so the snapshot's provenance
// survives even a failed run. The scraper is called exactly once; no retry.
func (s *ScrapeService) Run(ctx context.Context, req domain.ScrapeRequest) error {
	if err := s.repo.TruncateBookingDetails(ctx); err != nil {
		return fmt.Errorf("truncate booking details: %w", err)
	}
	if err := s.repo.SaveBookingDetails(ctx, domain.BookingDetails{
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		City:        req.City,
		NumAdults:   req.GroupAdults,
		NumChildren: req.GroupChildren,
		NumRooms:    req.NumRooms,
		Currency:    req.SelectedCurrency,
		OnlyHotel:   req.HotelFilter,
	}); err != nil {
		return fmt.Errorf("save booking details: %w", err)
	}

	rows, err := s.scraper.Scrape(ctx, req)
	if err != nil {
		return err
	}

	if err := s.repo.TruncateRoomPrices(ctx); err != nil {
		return fmt.Errorf("truncate room prices: %w", err)
	}
	if err := s.repo.SaveRoomPrices(ctx, rows); err != nil {
		return fmt.Errorf("save room prices: %w", err)
	}
	return nil
}

// Collect performs the scrape without touching storage. Used by the batch
// job, which truncates once and appends per city.
func (s *ScrapeService) Collect(ctx context.Context, req domain.ScrapeRequest) ([]domain.RoomPrice, error) {
	return s.scraper.Scrape(ctx, req)
}

// SaveRoomPrices appends rows to the current snapshot.
func (s *ScrapeService) SaveRoomPrices(ctx context.Context, rows []domain.RoomPrice) error {
	return s.repo.SaveRoomPrices(ctx, rows)
}

// Reset clears the room-price snapshot.
func (s *ScrapeService) Reset(ctx context.Context) error {
	return s.repo.TruncateRoomPrices(ctx)
}

// RoomPrices returns the snapshot ordered by price-per-review, best first.
func (s *ScrapeService) RoomPrices(ctx context.Context) ([]domain.RoomPrice, error) {
	return s.repo.ListRoomPrices(ctx)
}

// BookingDetails returns the search parameters behind the snapshot.
func (s *ScrapeService) BookingDetails(ctx context.Context) ([]domain.BookingDetails, error) {
	return s.repo.ListBookingDetails(ctx)
}

// Export builds an xlsx workbook from the snapshot. Returns ErrNotFound when
// there is nothing to export.
func (s *ScrapeService) Export(ctx context.Context) (string, []byte, error) {
	rows, err := s.repo.ListRoomPrices(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("list room prices: %w", err)
	}
	if len(rows) == 0 {
		return "", nil, domain.ErrNotFound
	}
	content, err := s.sheets.Write(rows)
	if err != nil {
		return "", nil, fmt.Errorf("write spreadsheet: %w", err)
	}
	name := fmt.Sprintf("%s_hotel_data_%s_to_%s.xlsx", rows[0].City, rows[0].CheckIn, rows[0].CheckOut)
	return name, content, nil
}
