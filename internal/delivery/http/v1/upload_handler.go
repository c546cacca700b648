package v1

import (
	"net/http"

	"urbancart-backend/pkg/logger"
	"urbancart-backend/pkg/storage"
	"urbancart-backend/pkg/utils"
)

type UploadHandler struct {
	storage       *storage.ObjectStorage
	maxUploadSize int64
}

func NewUploadHandler(objectStorage *storage.ObjectStorage, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:       objectStorage,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/admin/uploads", adminOnly(h.upload))
}

// upload accepts a multipart "image" field, re-encodes it and stores the
// result in the object bucket.
func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Missing image field")
		return
	}
	defer file.Close()

	if !utils.IsImage(header.Header.Get("Content-Type")) {
		utils.WriteError(w, http.StatusBadRequest, "Only JPEG, PNG and WebP images are allowed")
		return
	}

	data, contentType, err := utils.ProcessImage(file)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Could not process image")
		return
	}

	url, err := h.storage.UploadBuffer(r.Context(), data, contentType)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("image upload failed")
		utils.WriteError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
}
