package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/ajakgroup/pqtrack/internal/models"
	"github.com/ajakgroup/pqtrack/internal/records"
	"github.com/ajakgroup/pqtrack/internal/status"
)

// recordView is a record annotated with its derived display state. The
// derived fields are recomputed on every read and never stored.
type recordView struct {
	models.PQRecord
	Complete     bool   `json:"isComplete"`
	Bucket       string `json:"statusColor"`
	Delayed      bool   `json:"isDelayed"`
	HoursElapsed int    `json:"hoursElapsed"`
}

func annotate(r models.PQRecord) recordView {
	return recordView{
		PQRecord:     r,
		Complete:     status.IsComplete(&r),
		Bucket:       status.ClassifyColor(&r).String(),
		Delayed:      status.IsDelayed(r.CreatedAt, r.PQStatus),
		HoursElapsed: status.HoursElapsed(r.CreatedAt),
	}
}

// filterableFields are the query parameters accepted as exact-match filters.
var filterableFields = []string{
	"date", "shipperName", "buyer", "invoiceNumber", "commodity",
	"shippingBillReceived", "pqStatus", "pqHardcopy", "permitCopyStatus",
	"destinationPort",
}

// queryFromRequest maps the listing query string onto an engine query.
func queryFromRequest(req *http.Request) records.Query {
	params := req.URL.Query()

	filters := map[string]string{}
	for _, field := range filterableFields {
		if v := params.Get(field); v != "" {
			filters[field] = v
		}
	}

	return records.Query{
		Section:   records.Section(params.Get("section")),
		Search:    params.Get("search"),
		Filters:   filters,
		DateStart: params.Get("startDate"),
		DateEnd:   params.Get("endDate"),
		SortBy:    params.Get("sortBy"),
		SortDesc:  params.Get("sortOrder") != "asc",
	}
}

// listRecords returns the filtered record list plus the unfiltered badge
// counts in a single response.
func (r *Router) listRecords(w http.ResponseWriter, req *http.Request) {
	all, err := r.store.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records")
		return
	}

	filtered := records.Apply(all, queryFromRequest(req))

	views := make([]recordView, 0, len(filtered))
	for _, rec := range filtered {
		views = append(views, annotate(rec))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": views,
		"stats":   records.Counts(all),
	})
}

// getRecord returns a single record by ID
func (r *Router) getRecord(w http.ResponseWriter, req *http.Request) {
	rec, err := r.store.Get(mux.Vars(req)["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch record")
		return
	}
	respondJSON(w, http.StatusOK, annotate(*rec))
}

// createRecord creates a new record. Absent fields get the entry-form
// defaults before validation.
func (r *Router) createRecord(w http.ResponseWriter, req *http.Request) {
	var rec models.PQRecord
	if err := json.NewDecoder(req.Body).Decode(&rec); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	rec.ID = ""
	rec.CreatedAt = 0
	rec.ApplyEntryDefaults()

	if err := validateRecord(&rec); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.store.Upsert(&rec); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create record")
		return
	}

	log.Printf("📋 Created record %s (invoice %s)", rec.ID, rec.InvoiceNumber)
	respondJSON(w, http.StatusCreated, annotate(rec))
}

// updateRecord updates an existing record. Loading first and decoding into
// the loaded value keeps the id and creation timestamp immutable and leaves
// omitted fields unchanged.
func (r *Router) updateRecord(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	rec, err := r.store.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch record")
		return
	}

	createdAt := rec.CreatedAt
	if err := json.NewDecoder(req.Body).Decode(rec); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	rec.ID = id
	rec.CreatedAt = createdAt

	if err := validateRecord(rec); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.store.Upsert(rec); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update record")
		return
	}

	respondJSON(w, http.StatusOK, annotate(*rec))
}

// deleteRecord deletes a record and cascades its stored attachments. A
// failed attachment delete is logged but does not block the record delete.
func (r *Router) deleteRecord(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	rec, err := r.store.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch record")
		return
	}

	if r.files != nil {
		for _, name := range rec.Attachments {
			if err := r.files.Delete(req.Context(), name); err != nil {
				log.Printf("⚠️ Failed to delete attachment %s: %v", name, err)
			}
		}
	}

	if err := r.store.Delete(id); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete record")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Record deleted successfully",
	})
}

// markComplete is the one-click completion shortcut: it sets the shipping
// bill and PQ status fields, leaving the permit copy to the completion rule.
func (r *Router) markComplete(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	rec, err := r.store.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch record")
		return
	}

	rec.ShippingBillReceived = models.Yes
	rec.PQStatus = models.PQReceived

	if err := r.store.Upsert(rec); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update record")
		return
	}

	respondJSON(w, http.StatusOK, annotate(*rec))
}

func validateRecord(rec *models.PQRecord) error {
	if rec.ShipperName == "" {
		return errors.New("shipperName is required")
	}
	if rec.InvoiceNumber == "" {
		return errors.New("invoiceNumber is required")
	}
	switch rec.ShippingBillReceived {
	case models.Yes, models.No:
	default:
		return errors.New("shippingBillReceived must be Yes or No")
	}
	switch rec.PQStatus {
	case models.PQPending, models.PQReceived:
	default:
		return errors.New("pqStatus must be Pending or Received")
	}
	switch rec.PQHardcopy {
	case models.HardcopyReceived, models.HardcopyNotReceived:
	default:
		return errors.New("pqHardcopy must be Received or Not Received")
	}
	switch rec.PermitCopyStatus {
	case models.PermitReceived, models.PermitNotReceived, models.PermitNotRequired:
	default:
		return errors.New("permitCopyStatus must be Received, Not Received or Not Required")
	}
	return nil
}
