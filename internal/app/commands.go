package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

const rankingsCacheKey = "hotels:rankings"

// CommandService owns the write paths of the entry variant: append a
// validated entry, clear the list, record the currency preference.
type CommandService struct {
	store domain.EntryStore
	cache domain.Cache
}

func NewCommandService(store domain.EntryStore, cache domain.Cache) *CommandService {
	return &CommandService{store: store, cache: cache}
}

// AddHotel validates the raw form values and appends the entry to the
// persisted list. Field errors block the save entirely; a storage write
// failure is returned so the caller can keep the form state for a retry.
func (s *CommandService) AddHotel(ctx context.Context, nameRaw, priceRaw, ratingRaw, currency string) (domain.HotelEntry, FieldErrors, error) {
	parsed, errs := Validate(nameRaw, priceRaw, ratingRaw)
	if ce := ValidateCurrency(currency); ce != nil {
		if errs == nil {
			errs = FieldErrors{}
		}
		errs["currency"] = ce["currency"]
	}
	if len(errs) > 0 {
		return domain.HotelEntry{}, errs, nil
	}

	entry := domain.HotelEntry{
		Name:     parsed.Name,
		Price:    parsed.Price,
		Rating:   parsed.Rating,
		Currency: currency,
	}

	// Existing items ride along untouched, even ones the ranking engine
	// would skip. An unreadable or garbled list counts as no data.
	var list []json.RawMessage
	if raw, err := s.store.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("load hotel list failed; starting fresh")
	} else if len(raw) > 0 {
		if err := json.Unmarshal(raw, &list); err != nil {
			log.Warn().Err(err).Msg("stored hotel list is not valid JSON; starting fresh")
			list = nil
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return domain.HotelEntry{}, nil, fmt.Errorf("encode hotel entry: %w", err)
	}
	list = append(list, b)

	out, err := json.Marshal(list)
	if err != nil {
		return domain.HotelEntry{}, nil, fmt.Errorf("encode hotel list: %w", err)
	}
	if err := s.store.Save(ctx, out); err != nil {
		return domain.HotelEntry{}, nil, fmt.Errorf("save hotel list: %w", err)
	}

	// Best effort: the preference and the cached projection are derived state.
	if err := s.store.SaveCurrencyPreference(ctx, currency); err != nil {
		log.Warn().Err(err).Msg("save currency preference failed")
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, rankingsCacheKey)
	}
	return entry, nil, nil
}

// ClearHotels removes the persisted list entirely. Readers treat the absent
// key the same as an empty list.
func (s *CommandService) ClearHotels(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear hotel list: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, rankingsCacheKey)
	}
	return nil
}

// SaveCurrencyPreference persists the add-form's default currency selection.
func (s *CommandService) SaveCurrencyPreference(ctx context.Context, code string) error {
	if err := s.store.SaveCurrencyPreference(ctx, code); err != nil {
		return fmt.Errorf("save currency preference: %w", err)
	}
	return nil
}
