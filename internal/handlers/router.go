package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/ajakgroup/pqtrack/internal/buildinfo"
	"github.com/ajakgroup/pqtrack/internal/database"
	"github.com/ajakgroup/pqtrack/internal/records"
	"github.com/ajakgroup/pqtrack/internal/storage"
)

// Router wraps the mux router with the store and attachment service. files is
// nil when no bucket is configured; the upload endpoints then respond 503.
type Router struct {
	*mux.Router
	db    *database.DB
	store *records.Store
	files *storage.Service
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, files *storage.Service, frontendDir string) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		store:  records.NewStore(db),
		files:  files,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Record routes
	recs := api.PathPrefix("/records").Subrouter()
	recs.HandleFunc("", r.listRecords).Methods("GET")
	recs.HandleFunc("", r.createRecord).Methods("POST")
	recs.HandleFunc("/export/excel", r.exportExcel).Methods("GET")
	recs.HandleFunc("/export/pdf", r.exportPDF).Methods("GET")
	recs.HandleFunc("/extract", r.extractFields).Methods("POST")
	recs.HandleFunc("/{id}", r.getRecord).Methods("GET")
	recs.HandleFunc("/{id}", r.updateRecord).Methods("PUT")
	recs.HandleFunc("/{id}", r.deleteRecord).Methods("DELETE")
	recs.HandleFunc("/{id}/complete", r.markComplete).Methods("POST")

	api.HandleFunc("/stats", r.getStats).Methods("GET")

	// Attachment routes. Object names contain slashes, hence the custom
	// fileName pattern.
	fileAPI := api.PathPrefix("/files").Subrouter()
	fileAPI.HandleFunc("/upload", r.uploadFile).Methods("POST")
	fileAPI.HandleFunc("/upload-multiple", r.uploadMultipleFiles).Methods("POST")
	fileAPI.HandleFunc("/record/{recordId}", r.listRecordFiles).Methods("GET")
	fileAPI.HandleFunc("/access/{fileName:.+}", r.getFileAccessURL).Methods("GET")
	fileAPI.HandleFunc("/{fileName:.+}", r.deleteFile).Methods("DELETE")

	// Static frontend
	if frontendDir == "" {
		frontendDir = filepath.Join(".", "public")
	}
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(frontendDir)))

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version(),
		"started": buildinfo.StartTime,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
