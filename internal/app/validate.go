package app

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

// FieldErrors maps a form field to its human-readable error message.
type FieldErrors map[string]string

// ValidatedEntry holds the parsed form values after a successful Validate.
type ValidatedEntry struct {
	Name   string
	Price  float64
	Rating float64
}

const (
	msgNameRequired  = "Hotel name is required"
	msgPricePositive = "Price must be a positive number"
	msgRatingRange   = "Rating must be between 0 and 10"
)

// numericPrefix matches the longest numeric prefix of a string, mirroring the
// loose parseFloat semantics the form relies on: "1.2.3" parses as 1.2,
// "12abc" as 12, "abc" not at all.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseLooseFloat parses the numeric prefix of s. The bool reports whether
// any prefix parsed at all.
func parseLooseFloat(s string) (float64, bool) {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Validate checks the raw add-form values and returns either the parsed entry
// fields or one message per invalid field. Pure function; the already-chosen
// currency is attached by the caller.
func Validate(nameRaw, priceRaw, ratingRaw string) (ValidatedEntry, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(nameRaw)
	if name == "" {
		errs["name"] = msgNameRequired
	}

	price, ok := parseLooseFloat(priceRaw)
	if !ok || price <= 0 {
		errs["price"] = msgPricePositive
	}

	rating, ok := parseLooseFloat(ratingRaw)
	if !ok || rating < 0 || rating > 10 {
		errs["rating"] = msgRatingRange
	}

	if len(errs) > 0 {
		return ValidatedEntry{}, errs
	}
	return ValidatedEntry{Name: name, Price: price, Rating: rating}, nil
}

// ValidateCurrency reports whether code is one of the supported currency
// codes. The original form used a fixed selector, so this only rejects
// requests hand-crafted outside the UI.
func ValidateCurrency(code string) FieldErrors {
	if !domain.IsSupportedCurrency(code) {
		return FieldErrors{"currency": "Currency must be a supported currency code"}
	}
	return nil
}
