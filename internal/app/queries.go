package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

// QueryService serves the read paths of the entry variant. Rankings are
// cached briefly; writes invalidate the cache.
type QueryService struct {
	store    domain.EntryStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(store domain.EntryStore, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: store, cache: cache, cacheTTL: ttl}
}

// Rankings loads the persisted list and returns its ranked projection.
// Storage failures and malformed data degrade to an empty list rather than an
// error; the view renders its empty state for both.
func (s *QueryService) Rankings(ctx context.Context) []domain.RankedHotel {
	if s.cache != nil {
		var cached []domain.RankedHotel
		if ok, _ := s.cache.Get(ctx, rankingsCacheKey, &cached); ok {
			return cached
		}
	}

	raw, err := s.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("load hotel list failed; serving empty rankings")
		raw = nil
	}
	out := Rank(raw)

	if s.cache != nil {
		_ = s.cache.Set(ctx, rankingsCacheKey, out, int(s.cacheTTL.Seconds()))
	}
	return out
}

// CurrencyPreference returns the last currency the user selected, or the
// default when none was recorded or the store is unreadable.
func (s *QueryService) CurrencyPreference(ctx context.Context) string {
	code, err := s.store.LoadCurrencyPreference(ctx)
	if err != nil || code == "" {
		if err != nil {
			log.Warn().Err(err).Msg("load currency preference failed; using default")
		}
		return domain.DefaultCurrency
	}
	return code
}
