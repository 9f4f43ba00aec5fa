package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/simaogato/geohash-backend/internal/domain"
)

// DiceRoll is the value served by /rolldice: chosen by fair dice roll, guaranteed to be random (xkcd #221)
const DiceRoll = 4

// Geohasher computes the geohash of a raw date string
type Geohasher interface {
	Geohash(ctx context.Context, rawDate string) (*domain.GeohashResult, error)
}

// GeohashResponse is the wire form of a GeohashResult
type GeohashResponse struct {
	Opening   json.Number `json:"opening"`
	Hash      string      `json:"hash"`
	LatOffset float64     `json:"latOffset"`
	LonOffset float64     `json:"lonOffset"`

	// Set only when a graticule was requested
	Graticule string   `json:"graticule,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
}

// Handler serves the geohash HTTP API
type Handler struct {
	service Geohasher
}

// NewHandler creates a new Handler
func NewHandler(service Geohasher) *Handler {
	return &Handler{service: service}
}

// GetGeohash handles GET /geohash/{date}[?graticule=LAT,LON]
func (h *Handler) GetGeohash(w http.ResponseWriter, r *http.Request) {
	rawDate := r.PathValue("date")
	if rawDate == "" {
		writeError(w, r, fmt.Errorf("%w: date is required", domain.ErrInvalidInput))
		return
	}

	// Validate the graticule before any lookup
	var graticule *domain.Graticule
	if raw := r.URL.Query().Get("graticule"); raw != "" {
		g, err := domain.ParseGraticule(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		graticule = &g
	}

	result, err := h.service.Geohash(r.Context(), rawDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := GeohashResponse{
		Opening:   json.Number(result.Opening.String()),
		Hash:      result.Hash,
		LatOffset: result.LatOffset,
		LonOffset: result.LonOffset,
	}
	if graticule != nil {
		c := result.Apply(*graticule)
		resp.Graticule = graticule.String()
		resp.Lat = &c.Lat
		resp.Lon = &c.Lon
	}

	writeJSON(w, http.StatusOK, resp)
}

// MissingDate handles GET /geohash/ with no date segment
func (h *Handler) MissingDate(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, fmt.Errorf("%w: date is required", domain.ErrInvalidInput))
}

// RollDice handles GET /rolldice. It never touches the geohash pipeline.
func (h *Handler) RollDice(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DiceRoll)
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Unknown answers every unrouted path with a server error
func (h *Handler) Unknown(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Unknown request", http.StatusInternalServerError)
}
