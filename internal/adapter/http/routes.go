package http

import (
	"net/http"
	"time"

	"github.com/simaogato/geohash-backend/internal/metrics"
)

func addRoutes(mux *http.ServeMux, h *Handler, m *metrics.Metrics) {
	mux.HandleFunc("GET /geohash/{date}", h.GetGeohash)
	mux.HandleFunc("GET /geohash/{$}", h.MissingDate)
	mux.HandleFunc("GET /rolldice", h.RollDice)
	mux.HandleFunc("GET /healthz", h.Health)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
	mux.HandleFunc("/", h.Unknown)
}

// NewServer builds the HTTP API handler. m may be nil to disable metrics.
func NewServer(service Geohasher, m *metrics.Metrics, requestTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()
	addRoutes(mux, NewHandler(service), m)

	var handler http.Handler = mux
	handler = withRequestContext(handler, m, requestTimeout)
	handler = withCORS(handler)

	return handler
}
