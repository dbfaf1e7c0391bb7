// backend/src/models/statement.go
package models

// Statement is a parsed brokerage statement: the validated header
// metadata plus the normalized trade rows, ready for the pipeline.
type Statement struct {
	ReferenceYear int     `json:"reference_year"`
	Institution   string  `json:"institution"`
	Trades        []Trade `json:"trades"`
}
