// backend/src/handlers/position_handler.go
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

type PositionHandler struct {
	statementService services.StatementService
}

func NewPositionHandler(service services.StatementService) *PositionHandler {
	return &PositionHandler{statementService: service}
}

// HandleGetPositions returns the per-asset position report of the most
// recently processed statement. Assets with no buys in the period carry
// a null average price, which must survive serialization as null, not 0.
func (h *PositionHandler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Info("Handling GetPositions request")

	result, ok := h.statementService.LatestResult()
	positions := []models.AssetPosition{}
	if ok && result.Positions != nil {
		positions = result.Positions
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(positions)
}

// HandleExportPositionsCSV streams the holdings report as a CSV download.
func (h *PositionHandler) HandleExportPositionsCSV(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	result, ok := h.statementService.LatestResult()
	if !ok {
		utils.SendJSONError(w, "no statement has been processed yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="positions.csv"`)
	if err := formatting.WritePositionsCSV(w, result.Positions); err != nil {
		ctxLogger.Error("Error writing positions CSV", "error", err)
	}
}
