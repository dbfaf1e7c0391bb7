// backend/src/handlers/fee_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/ceifolio/backend/src/formatting"
	"github.com/username/ceifolio/backend/src/logger"
	"github.com/username/ceifolio/backend/src/models"
	"github.com/username/ceifolio/backend/src/services"
	"github.com/username/ceifolio/backend/src/utils"
)

type FeeHandler struct {
	statementService services.StatementService
}

func NewFeeHandler(service services.StatementService) *FeeHandler {
	return &FeeHandler{statementService: service}
}

// HandleGetFees returns the per-trade fee report of the most recently
// processed statement.
func (h *FeeHandler) HandleGetFees(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Info("Handling GetFees request")

	result, ok := h.statementService.LatestResult()
	report := []models.FeeDetail{}
	if ok && result.FeeReport != nil {
		report = result.FeeReport
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// HandleExportFeesCSV streams the fee report as a CSV download.
func (h *FeeHandler) HandleExportFeesCSV(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	result, ok := h.statementService.LatestResult()
	if !ok {
		utils.SendJSONError(w, "no statement has been processed yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="fees.csv"`)
	if err := formatting.WriteFeeReportCSV(w, result.FeeReport); err != nil {
		ctxLogger.Error("Error writing fee report CSV", "error", err)
	}
}
