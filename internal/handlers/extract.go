package handlers

import (
	"net/http"

	"github.com/ajakgroup/pqtrack/internal/extract"
	"github.com/ajakgroup/pqtrack/internal/storage"
)

// extractFields runs the spreadsheet auto-fill heuristic over an uploaded
// workbook. The current form values arrive as plain form fields so unmatched
// columns leave them untouched in the response.
func (r *Router) extractFields(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(storage.MaxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	current := extract.Fields{
		Date:            req.FormValue("date"),
		ShipperName:     req.FormValue("shipperName"),
		Buyer:           req.FormValue("buyer"),
		InvoiceNumber:   req.FormValue("invoiceNumber"),
		DestinationPort: req.FormValue("destinationPort"),
		Commodity:       req.FormValue("commodity"),
	}

	fields, result, err := extract.FromWorkbook(file, current)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not read "+header.Filename+" as a spreadsheet")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fields": fields,
		"result": result,
	})
}
