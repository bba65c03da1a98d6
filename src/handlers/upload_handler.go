package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/tradereport/src/config"
	"github.com/username/tradereport/src/logger"
	"github.com/username/tradereport/src/services"
	"github.com/username/tradereport/src/utils"
)

type UploadHandler struct {
	reportService services.ReportService
}

func NewUploadHandler(service services.ReportService) *UploadHandler {
	return &UploadHandler{reportService: service}
}

// HandleUpload accepts a multipart activity file ("file" field) and runs the
// full pipeline over it. The optional "source" field selects the parser.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	source := r.FormValue("source")
	logger.L.Info("Processing upload request", "filename", fileHeader.Filename, "source", source)

	result, err := h.reportService.ProcessUpload(file, source)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			logger.L.Warn("Upload processing failed due to parsing errors", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing activity file: %v", err), http.StatusBadRequest)
		} else {
			logger.L.Error("Internal error processing upload", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	utils.SendJSON(w, result)
}

// HandleGetUpload returns the ingest counts of a past upload by id.
func (h *UploadHandler) HandleGetUpload(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.UploadSummary(chi.URLParam(r, "uploadID"))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	utils.SendJSON(w, result)
}
