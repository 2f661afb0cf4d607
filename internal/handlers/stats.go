package handlers

import (
	"net/http"

	"github.com/ajakgroup/pqtrack/internal/records"
)

// getStats returns the dashboard badge counts over the full record set.
func (r *Router) getStats(w http.ResponseWriter, req *http.Request) {
	all, err := r.store.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records")
		return
	}
	respondJSON(w, http.StatusOK, records.Counts(all))
}
