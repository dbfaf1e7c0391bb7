// backend/src/parsers/parser.go
package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/ceifolio/backend/src/models"
	"github.com/username/ceifolio/backend/src/parsers/cei"
)

// Parser converts a raw statement file into a validated Statement.
type Parser interface {
	Parse(file io.Reader) (*models.Statement, error)
}

// GetParser returns the parser registered for the given broker source.
func GetParser(source string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "cei", "b3":
		return cei.NewParser(), nil
	default:
		return nil, fmt.Errorf("unsupported statement source: %q", source)
	}
}
