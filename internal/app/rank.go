package app

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

// storedEntry is the tolerant decode target for one persisted item. Pointer
// fields distinguish "absent" from zero values.
type storedEntry struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Rating   *float64 `json:"rating"`
	Currency *string  `json:"currency"`
}

// Rank turns the raw persisted list into the ranked display projection.
//
// It never fails: malformed top-level JSON reads as an empty list, and items
// that cannot be interpreted as a hotel entry are skipped. An item survives
// when it decodes as an object whose name is a string and whose price and
// rating are numbers with price > 0 and a finite score; a missing currency is
// defaulted rather than excluded. The sort is stable, so entries with equal
// scores keep their stored insertion order.
func Rank(raw []byte) []domain.RankedHotel {
	out := make([]domain.RankedHotel, 0)
	if len(raw) == 0 {
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}

	for _, item := range items {
		var e storedEntry
		if err := json.Unmarshal(item, &e); err != nil {
			continue // null, bare scalar, or mistyped field
		}
		if e.Name == nil || e.Price == nil || e.Rating == nil {
			continue
		}
		if *e.Price <= 0 {
			continue // tampered storage; score would not be meaningful
		}
		score := domain.ValueScore(*e.Rating, *e.Price)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		currency := domain.DefaultCurrency
		if e.Currency != nil {
			currency = *e.Currency
		}
		out = append(out, domain.RankedHotel{
			HotelEntry: domain.HotelEntry{
				Name:     *e.Name,
				Price:    *e.Price,
				Rating:   *e.Rating,
				Currency: currency,
			},
			ValueScore: score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ValueScore > out[j].ValueScore
	})
	for i := range out {
		out[i].Rank = i + 1
		out[i].BestValue = i == 0
	}
	return out
}
