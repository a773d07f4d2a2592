package domain

// ScrapeRequest mirrors the booking search form: where, when, party size and
// whether to restrict results to hotel-type properties.
type ScrapeRequest struct {
	City             string `json:"city"`
	Country          string `json:"country"`
	CheckIn          string `json:"check_in"`  // YYYY-MM-DD
	CheckOut         string `json:"check_out"` // YYYY-MM-DD
	GroupAdults      int    `json:"group_adults"`
	GroupChildren    int    `json:"group_children"`
	NumRooms         int    `json:"num_rooms"`
	SelectedCurrency string `json:"selected_currency"`
	HotelFilter      bool   `json:"hotel_filter"`
}

// RoomPrice is one scraped nightly price for a property. PricePerReview is
// price/review as computed by the scraper; lower is better.
type RoomPrice struct {
	Hotel          string  `json:"hotel"`
	RoomPrice      float64 `json:"room_price"`
	ReviewScore    float64 `json:"review_score"`
	PricePerReview float64 `json:"price_per_review"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	AsOf           string  `json:"as_of_date"`
	City           string  `json:"city"`
}

// BookingDetails records the search that produced the current room_prices
// snapshot. One row at a time; replaced on every new scrape.
type BookingDetails struct {
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	City        string `json:"city"`
	NumAdults   int    `json:"num_adults"`
	NumChildren int    `json:"num_children"`
	NumRooms    int    `json:"num_rooms"`
	Currency    string `json:"currency"`
	OnlyHotel   bool   `json:"only_hotel"`
}
