package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/robinvdvleuten/insight/dashboard"
	"github.com/robinvdvleuten/insight/loader"
)

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeError maps a dashboard or loader error to its HTTP status.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	var feedErr *loader.FeedError
	var indexErr *dashboard.ChartIndexError

	switch {
	case errors.Is(err, dashboard.ErrRefreshInProgress),
		errors.Is(err, dashboard.ErrNoLedgerOpen),
		errors.Is(err, dashboard.ErrNoSupplierLedgerOpen):
		return http.StatusConflict
	case errors.As(err, &feedErr):
		return http.StatusBadGateway
	case errors.Is(err, dashboard.ErrUnknownChart):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNoDrilldown), errors.As(err, &indexErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// pageParam reads the page query parameter. A missing parameter is page 1.
func pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid page %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return page, true
}
