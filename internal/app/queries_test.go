package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/app"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

func TestRankings_CacheMissThenHit(t *testing.T) {
	store := &fakeStore{raw: []byte(`[{"name":"Cached Inn","price":100,"rating":8,"currency":"USD"}]`)}
	cache := &fakeCache{}
	q := app.NewQueryService(store, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	out := q.Rankings(context.Background())
	if len(out) != 1 || out[0].Name != "Cached Inn" {
		t.Fatalf("unexpected rankings: %+v", out)
	}

	// Mutate store to prove the second read comes from cache
	store.raw = []byte(`[]`)

	out2 := q.Rankings(context.Background())
	if len(out2) != 1 || out2[0].Name != "Cached Inn" {
		t.Fatalf("expected cached rankings, got %+v", out2)
	}
}

func TestRankings_LoadFailureServesEmpty(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("medium unavailable")}
	q := app.NewQueryService(store, &fakeCache{}, time.Minute)

	out := q.Rankings(context.Background())
	if len(out) != 0 {
		t.Fatalf("read failure must degrade to empty, got %+v", out)
	}
}

func TestRankings_WorksWithoutCache(t *testing.T) {
	store := &fakeStore{raw: []byte(`[{"name":"A","price":10,"rating":5,"currency":"USD"}]`)}
	q := app.NewQueryService(store, nil, time.Minute)

	if out := q.Rankings(context.Background()); len(out) != 1 {
		t.Fatalf("unexpected rankings: %+v", out)
	}
}

func TestCurrencyPreference(t *testing.T) {
	store := &fakeStore{}
	q := app.NewQueryService(store, nil, time.Minute)

	if got := q.CurrencyPreference(context.Background()); got != domain.DefaultCurrency {
		t.Fatalf("expected default currency, got %q", got)
	}

	store.cur = "THB"
	if got := q.CurrencyPreference(context.Background()); got != "THB" {
		t.Fatalf("expected THB, got %q", got)
	}
}
