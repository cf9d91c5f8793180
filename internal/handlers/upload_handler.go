package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/pkg/httputil"
)

const maxUploadBytes = 10 << 20

var allowedUploadTypes = map[string]bool{
	"image/png":         true,
	"image/jpeg":        true,
	"image/webp":        true,
	"image/svg+xml":     true,
	"model/gltf-binary": true,
	"application/pdf":   true,
	"text/plain":        true,
}

// FileUploader stores a file and returns its public URL and storage key.
type FileUploader interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (url, key string, err error)
}

type UploadHandler struct {
	uploader FileUploader
}

func NewUploadHandler(uploader FileUploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
	}
}

// HandleUpload handles POST /v1/uploads (multipart: "file").
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		httputil.RespondError(w, http.StatusNotImplemented, "File uploads are not configured")
		return
	}

	// Cap the wire body before parsing so an oversized upload is cut off
	// instead of spooled to disk and rejected afterwards. The slack covers
	// multipart boundaries and headers.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<20))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "File exceeds 10MB limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "File exceeds 10MB limit")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		httputil.RespondError(w, http.StatusUnsupportedMediaType, "Unsupported file type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		log.Printf("ERROR [UploadHandler] HandleUpload: Failed to read upload: %v", err)
		httputil.RespondError(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if len(data) > maxUploadBytes {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "File exceeds 10MB limit")
		return
	}

	url, key, err := h.uploader.Upload(r.Context(), header.Filename, contentType, data)
	if err != nil {
		log.Printf("ERROR [UploadHandler] HandleUpload: Upload of %s failed: %v", header.Filename, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	log.Printf("[UploadHandler] Stored %s as %s", header.Filename, key)
	httputil.RespondJSON(w, http.StatusCreated, models.UploadResponse{
		URL:      url,
		FileName: header.Filename,
		Size:     int64(len(data)),
	})
}
