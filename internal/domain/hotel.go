package domain

import "math"

// HotelEntry is a candidate hotel as entered by the user. Entries are stored
// exactly as validated; ValueScore is derived at read time and never persisted.
type HotelEntry struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Currency string  `json:"currency"`
}

// RankedHotel is the display projection of an entry: score, 1-based rank and
// a best-value flag on rank 1.
type RankedHotel struct {
	HotelEntry
	ValueScore float64 `json:"valueScore"`
	Rank       int     `json:"rank"`
	BestValue  bool    `json:"bestValue"`
}

// ValueScore computes rating/price rounded to 4 decimal places, half away
// from zero. Callers must ensure price > 0.
func ValueScore(rating, price float64) float64 {
	return math.Round(rating/price*1e4) / 1e4
}

const DefaultCurrency = "USD"

// Currencies the add-form offers. Order matches the original selector.
var Currencies = []string{
	"USD", "EUR", "GBP", "JPY", "CNY", "KRW", "SGD", "HKD", "TWD", "THB",
	"MYR", "IDR", "INR", "AED", "SAR", "QAR", "KWD", "BHD", "OMR", "JOD",
	"ILS", "TRY", "EGP", "ZAR", "NAD", "XOF", "AUD", "NZD", "FJD", "CAD",
	"MXN", "BRL", "ARS", "CLP", "COP", "CHF", "NOK", "SEK", "DKK", "ISK",
	"PLN", "CZK", "HUF", "RON", "BGN", "UAH", "MDL", "GEL", "AZN", "KZT",
	"RUB", "MOP",
}

func IsSupportedCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}
