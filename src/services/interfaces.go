// backend/src/services/interfaces.go
package services

import (
	"errors"
	"io"

	"github.com/username/ceifolio/backend/src/models"
)

// StatementResult is the outcome of processing one statement: the two
// reports the taxpayer needs, plus the validated header metadata.
type StatementResult struct {
	ReferenceYear int                    `json:"reference_year"`
	Institution   string                 `json:"institution"`
	FeeReport     []models.FeeDetail     `json:"fee_report"`
	Positions     []models.AssetPosition `json:"positions"`
}

// Define common service errors
var (
	ErrParsingFailed    = errors.New("statement parsing failed")
	ErrProcessingFailed = errors.New("trade processing failed")
)

// StatementService defines the interface for the core statement
// processing logic.
type StatementService interface {
	ProcessStatement(fileReader io.Reader, source string, filename string) (*StatementResult, error)
	LatestResult() (*StatementResult, bool)
}
