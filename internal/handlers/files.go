package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ajakgroup/pqtrack/internal/storage"
)

// uploadResult is one entry in a batch upload response.
type uploadResult struct {
	OriginalName string            `json:"originalName"`
	Success      bool              `json:"success"`
	Error        string            `json:"error,omitempty"`
	File         *storage.FileInfo `json:"file,omitempty"`
}

func (r *Router) storageReady(w http.ResponseWriter) bool {
	if r.files == nil {
		respondError(w, http.StatusServiceUnavailable, "file storage not configured")
		return false
	}
	return true
}

// uploadFile stores one attachment for a record.
func (r *Router) uploadFile(w http.ResponseWriter, req *http.Request) {
	if !r.storageReady(w) {
		return
	}

	if err := req.ParseMultipartForm(storage.MaxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	recordID := req.FormValue("recordId")
	if recordID == "" {
		respondError(w, http.StatusBadRequest, "recordId is required")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	info, err := r.storeFile(req, recordID, file, header)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// uploadMultipleFiles stores up to MaxBatchFiles attachments in one request.
// Files upload one at a time and each gets its own result entry, so one bad
// file never sinks the batch.
func (r *Router) uploadMultipleFiles(w http.ResponseWriter, req *http.Request) {
	if !r.storageReady(w) {
		return
	}

	if err := req.ParseMultipartForm(int64(storage.MaxBatchFiles) * storage.MaxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	recordID := req.FormValue("recordId")
	if recordID == "" {
		respondError(w, http.StatusBadRequest, "recordId is required")
		return
	}

	var headers []*multipart.FileHeader
	if req.MultipartForm != nil {
		headers = req.MultipartForm.File["files"]
	}
	if len(headers) == 0 {
		respondError(w, http.StatusBadRequest, "No files provided")
		return
	}
	if len(headers) > storage.MaxBatchFiles {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("Too many files: maximum %d per upload", storage.MaxBatchFiles))
		return
	}

	results := make([]uploadResult, 0, len(headers))
	for _, header := range headers {
		res := uploadResult{OriginalName: header.Filename}

		file, err := header.Open()
		if err != nil {
			res.Error = "could not read file"
			results = append(results, res)
			continue
		}

		info, err := r.storeFile(req, recordID, file, header)
		file.Close()
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Success = true
			res.File = info
		}
		results = append(results, res)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

// storeFile validates one upload against the size and type limits and hands
// it to the storage service.
func (r *Router) storeFile(req *http.Request, recordID string, file multipart.File, header *multipart.FileHeader) (*storage.FileInfo, error) {
	if header.Size > storage.MaxFileSize {
		return nil, fmt.Errorf("%s exceeds the 10MB size limit", header.Filename)
	}

	contentType := header.Header.Get("Content-Type")
	if !storage.AllowedContentType(contentType) {
		return nil, fmt.Errorf("file type %s is not allowed", contentType)
	}

	return r.files.Upload(req.Context(), recordID, header.Filename, contentType, header.Size, file)
}

// getFileAccessURL returns a fresh short-lived signed URL for one attachment.
func (r *Router) getFileAccessURL(w http.ResponseWriter, req *http.Request) {
	if !r.storageReady(w) {
		return
	}

	fileName := mux.Vars(req)["fileName"]
	url, err := r.files.SignedURL(req.Context(), fileName)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate access URL")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"fileName":  fileName,
		"signedUrl": url,
	})
}

// deleteFile removes one attachment object from the bucket.
func (r *Router) deleteFile(w http.ResponseWriter, req *http.Request) {
	if !r.storageReady(w) {
		return
	}

	fileName := mux.Vars(req)["fileName"]
	if err := r.files.Delete(req.Context(), fileName); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	log.Printf("🗑️ Deleted attachment %s", fileName)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "File deleted successfully",
	})
}

// listRecordFiles lists all stored attachments for a record.
func (r *Router) listRecordFiles(w http.ResponseWriter, req *http.Request) {
	if !r.storageReady(w) {
		return
	}

	recordID := mux.Vars(req)["recordId"]
	files, err := r.files.List(req.Context(), recordID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list files")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recordId": recordID,
		"files":    files,
	})
}
