package httpserver

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/app"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
)

type Handlers struct {
	Cmd *app.CommandService
	Q   *app.QueryService
	Scr *app.ScrapeService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/v1/hotels", h.addHotel)
	s.mux.Delete("/v1/hotels", h.clearHotels)
	s.mux.Get("/v1/hotels/rankings", h.rankings)
	s.mux.Get("/v1/preferences/currency", h.getCurrency)
	s.mux.Put("/v1/preferences/currency", h.putCurrency)

	// Scraping-variant routes; the paths (trailing slash included) are part
	// of the consumed contract.
	s.mux.Post("/scraping/", h.startScraping)
	s.mux.Get("/get_hotel_data_from_db/", h.hotelData)
	s.mux.Get("/get_booking_details_from_db/", h.bookingDetails)
	s.mux.Post("/save/", h.saveSpreadsheet)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- entry variant ----

type addHotelRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Rating   string `json:"rating"`
	Currency string `json:"currency"`
}

func (h *Handlers) addHotel(w http.ResponseWriter, r *http.Request) {
	var req addHotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error_msg": "Request body must be valid JSON"})
		return
	}
	if req.Currency == "" {
		// The form preselects the last used currency.
		req.Currency = h.Q.CurrencyPreference(r.Context())
	}

	entry, fieldErrs, err := h.Cmd.AddHotel(r.Context(), req.Name, req.Price, req.Rating, req.Currency)
	if err != nil {
		log.Error().Err(err).Msg("add hotel failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error_msg": "Unable to save hotel data. Please try again.",
		})
		return
	}
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handlers) clearHotels(w http.ResponseWriter, r *http.Request) {
	if err := h.Cmd.ClearHotels(r.Context()); err != nil {
		log.Error().Err(err).Msg("clear hotels failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error_msg": "Unable to clear hotel data. Please try again.",
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) rankings(w http.ResponseWriter, r *http.Request) {
	out := h.Q.Rankings(r.Context())
	resp := map[string]any{"hotels": out, "count": len(out)}

	etag, body := calcETagAndBody(resp)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write rankings body")
	}
}

func (h *Handlers) getCurrency(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"currency": h.Q.CurrencyPreference(r.Context())})
}

func (h *Handlers) putCurrency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error_msg": "Request body must be valid JSON"})
		return
	}
	if fe := app.ValidateCurrency(req.Currency); fe != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fe})
		return
	}
	if err := h.Cmd.SaveCurrencyPreference(r.Context(), req.Currency); err != nil {
		log.Error().Err(err).Msg("save currency preference failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error_msg": "Unable to save currency preference. Please try again.",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"currency": req.Currency})
}

// ---- scraping variant ----

func (h *Handlers) startScraping(w http.ResponseWriter, r *http.Request) {
	var req domain.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error_msg": "Request body must be valid JSON"})
		return
	}
	if req.City == "" || req.CheckIn == "" || req.CheckOut == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error_msg": "city, check_in and check_out are required"})
		return
	}

	err := h.Scr.Run(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"success_msg": "Scraping completed"})
	case errors.Is(err, domain.ErrNoResults):
		// Clients key on this exact error value.
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "SystemExit"})
	case errors.Is(err, domain.ErrUnreachable):
		log.Error().Err(err).Msg("scraper unreachable")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error_msg": "Unable to reach the scraping service"})
	default:
		log.Error().Err(err).Msg("scraping failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error_msg": "Unexpected error occurred"})
	}
}

func (h *Handlers) hotelData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Scr.RoomPrices(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list room prices failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error_msg": "Unexpected error occurred"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotel_data": rows})
}

func (h *Handlers) bookingDetails(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Scr.BookingDetails(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list booking details failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error_msg": "Unexpected error occurred"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking_data": rows})
}

func (h *Handlers) saveSpreadsheet(w http.ResponseWriter, r *http.Request) {
	name, content, err := h.Scr.Export(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{
			"filename":     name,
			"file_content": base64.StdEncoding.EncodeToString(content),
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error_msg": "No data found to save"})
	default:
		log.Error().Err(err).Msg("spreadsheet export failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error_msg": "Unexpected error occurred"})
	}
}
