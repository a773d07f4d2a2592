package scraper

import (
	"strconv"
	"strings"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

// Field aliases seen across scraper builds. Older builds used the dataframe
// column names (Hotel, Price, Review), newer ones snake_case.
var rowAliases = map[string][]string{
	"hotel":            {"hotel", "Hotel", "name", "accommodation_name", "AccommodationName"},
	"room_price":       {"room_price", "price", "Price"},
	"review_score":     {"review_score", "review", "Review", "score"},
	"price_per_review": {"price_per_review", "Price/Review"},
	"check_in":         {"check_in", "CheckIn"},
	"check_out":        {"check_out", "CheckOut"},
	"as_of_date":       {"as_of_date", "as_of", "AsOf"},
	"city":             {"city", "City"},
}

func lookupStr(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func lookupFloat(m map[string]any, keys []string) (float64, bool) {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// mapRoomPrices converts the service's loosely-shaped rows into RoomPrice
// values. Rows without a hotel name or a usable price are dropped; a missing
// price-per-review is recomputed from price and review score.
func mapRoomPrices(in []map[string]any) []domain.RoomPrice {
	out := make([]domain.RoomPrice, 0, len(in))
	for _, m := range in {
		hotel := lookupStr(m, rowAliases["hotel"])
		price, okPrice := lookupFloat(m, rowAliases["room_price"])
		if hotel == "" || !okPrice || price <= 0 {
			continue
		}
		review, _ := lookupFloat(m, rowAliases["review_score"])
		ppr, okPPR := lookupFloat(m, rowAliases["price_per_review"])
		if !okPPR && review > 0 {
			ppr = price / review
		}
		out = append(out, domain.RoomPrice{
			Hotel:          hotel,
			RoomPrice:      price,
			ReviewScore:    review,
			PricePerReview: ppr,
			CheckIn:        lookupStr(m, rowAliases["check_in"]),
			CheckOut:       lookupStr(m, rowAliases["check_out"]),
			AsOf:           lookupStr(m, rowAliases["as_of_date"]),
			City:           lookupStr(m, rowAliases["city"]),
		})
	}
	return out
}
