// backend/src/handlers/statement_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/ceifolio/backend/src/b3"
	"github.com/username/ceifolio/backend/src/config"
	"github.com/username/ceifolio/backend/src/logger"
	"github.com/username/ceifolio/backend/src/security/validation"
	"github.com/username/ceifolio/backend/src/services"
	"github.com/username/ceifolio/backend/src/utils"
)

type StatementHandler struct {
	statementService services.StatementService
}

func NewStatementHandler(service services.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: service,
	}
}

// HandleUpload accepts a multipart statement upload, validates the file
// content, and runs the processing pipeline on it.
func (h *StatementHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	source := r.FormValue("source")
	if source == "" {
		source = "cei"
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "failed to retrieve file from request; ensure the 'file' field is used", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("file too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		ctxLogger.Warn("File content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger.Info("Processing statement upload", "filename", fileHeader.Filename, "detectedType", detectedContentType)

	result, err := h.statementService.ProcessStatement(file, source, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, b3.ErrRateUnavailable):
			// The rate schedule does not cover a trade date in the
			// statement; the message names the offending date.
			ctxLogger.Error("Fee rate unavailable for statement", "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, services.ErrParsingFailed):
			ctxLogger.Warn("Statement rejected by parser", "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			ctxLogger.Error("Statement processing failed", "error", err)
			utils.SendJSONError(w, "statement processing failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		ctxLogger.Error("Error encoding JSON response for statement result", "error", err)
	}
}
