package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ajakgroup/pqtrack/internal/export"
	"github.com/ajakgroup/pqtrack/internal/models"
	"github.com/ajakgroup/pqtrack/internal/records"
)

// exportExcel streams the current (filtered) record list as an xlsx download.
func (r *Router) exportExcel(w http.ResponseWriter, req *http.Request) {
	recs, ok := r.filteredRecords(w, req)
	if !ok {
		return
	}

	data, err := export.Excel(recs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate Excel file: %v", err))
		return
	}

	sendDownload(w, data,
		fmt.Sprintf("pq-records-%s.xlsx", time.Now().Format("2006-01-02")),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// exportPDF streams the current (filtered) record list as a PDF download.
func (r *Router) exportPDF(w http.ResponseWriter, req *http.Request) {
	recs, ok := r.filteredRecords(w, req)
	if !ok {
		return
	}

	data, err := export.PDF(recs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	sendDownload(w, data,
		fmt.Sprintf("pq-records-%s.pdf", time.Now().Format("2006-01-02")),
		"application/pdf")
}

// filteredRecords loads the full set and applies the same query parameters
// the listing endpoint accepts, so exports match what the dashboard shows.
func (r *Router) filteredRecords(w http.ResponseWriter, req *http.Request) ([]models.PQRecord, bool) {
	all, err := r.store.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records")
		return nil, false
	}
	return records.Apply(all, queryFromRequest(req)), true
}

// sendDownload sets attachment headers and writes the file body.
func sendDownload(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
