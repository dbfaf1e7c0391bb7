// backend/src/parsers/cei/parser.go
package cei

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/username/ceifolio/backend/src/models"
	"github.com/username/ceifolio/backend/src/security/validation"
)

// CEIParser reads a B3/CEI trade statement. The export comes either as a
// semicolon-delimited CSV or as an XLSX workbook; both reduce to the same
// cell grid and share the row-table logic below.
type CEIParser struct{}

// NewParser creates a new instance of the CEIParser.
func NewParser() *CEIParser {
	return &CEIParser{}
}

var xlsxMagic = []byte("PK\x03\x04")

// periodRe matches the reporting period in the statement header,
// e.g. "01/01/2019 a 31/12/2019".
var periodRe = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+a\s+(\d{2}/\d{2}/\d{4})`)

// Parse reads a CEI statement and returns the validated header metadata
// plus the normalized trade rows.
func (p *CEIParser) Parse(file io.Reader) (*models.Statement, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("cei parser: failed to read statement: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("cei parser: statement file is empty")
	}

	var rows [][]string
	if bytes.HasPrefix(data, xlsxMagic) {
		rows, err = readXLSX(data)
	} else {
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	return parseRows(rows)
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cei parser: failed to read CSV records: %w", err)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cei parser: failed to open XLSX workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("cei parser: XLSX workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cei parser: failed to read XLSX rows: %w", err)
	}
	return rows, nil
}

// parseRows turns the raw cell grid into a Statement: locate and validate
// the header metadata, find the trade table, and normalize its rows.
func parseRows(rows [][]string) (*models.Statement, error) {
	rows = cleanTable(rows)

	year, institution, err := parseHeader(rows)
	if err != nil {
		return nil, err
	}

	trades, err := parseTrades(rows)
	if err != nil {
		return nil, err
	}

	return &models.Statement{
		ReferenceYear: year,
		Institution:   institution,
		Trades:        trades,
	}, nil
}

// cleanTable drops columns and rows where every cell is empty. CEI
// exports pad the grid with spacer columns that carry no data.
func cleanTable(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	used := make([]bool, width)
	for _, row := range rows {
		for i, cell := range row {
			if strings.TrimSpace(cell) != "" {
				used[i] = true
			}
		}
	}

	var cleaned [][]string
	for _, row := range rows {
		var outRow []string
		empty := true
		for i := 0; i < width; i++ {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if !used[i] {
				continue
			}
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
			outRow = append(outRow, cell)
		}
		if !empty {
			cleaned = append(cleaned, outRow)
		}
	}
	return cleaned
}

// parseHeader locates the reporting period and the institution name in
// the statement header. The institution is the next non-empty cell in the
// period's column.
func parseHeader(rows [][]string) (int, string, error) {
	for r, row := range rows {
		for c, cell := range row {
			m := periodRe.FindStringSubmatch(cell)
			if m == nil {
				continue
			}
			year, err := ValidatePeriod(m[1], m[2])
			if err != nil {
				return 0, "", err
			}
			institution := ""
			for _, later := range rows[r+1:] {
				if c < len(later) && strings.TrimSpace(later[c]) != "" {
					cand := strings.TrimSpace(later[c])
					if strings.Contains(cand, "Data Negócio") || strings.Contains(cand, "Data Negocio") {
						break
					}
					institution = cand
					break
				}
			}
			return year, institution, nil
		}
	}
	return 0, "", fmt.Errorf("cei parser: statement header has no reporting period")
}

// ValidatePeriod checks that the statement covers one full calendar year
// and returns that reference year. Partial-year and multi-year
// statements are rejected.
func ValidatePeriod(start, end string) (int, error) {
	startDate, err := time.Parse("02/01/2006", strings.TrimSpace(start))
	if err != nil {
		return 0, fmt.Errorf("cei parser: invalid period start %q: %w", start, err)
	}
	endDate, err := time.Parse("02/01/2006", strings.TrimSpace(end))
	if err != nil {
		return 0, fmt.Errorf("cei parser: invalid period end %q: %w", end, err)
	}
	if startDate.Year() != endDate.Year() {
		return 0, fmt.Errorf("cei parser: reporting period spans multiple years (%s to %s)", start, end)
	}
	if startDate.Month() != time.January || startDate.Day() != 1 ||
		endDate.Month() != time.December || endDate.Day() != 31 {
		return 0, fmt.Errorf("cei parser: reporting period is not a full calendar year (%s to %s)", start, end)
	}
	return startDate.Year(), nil
}

// ParseTradeDate parses a trade-table date cell, e.g. " 01/02/19 ".
func ParseTradeDate(cell string) (time.Time, error) {
	return time.Parse("02/01/06", strings.TrimSpace(cell))
}

// Column labels of the CEI trade table.
const (
	colDate        = "Data Negócio"
	colSide        = "C/V"
	colCode        = "Código"
	colDescription = "Especificação do Ativo"
	colQuantity    = "Quantidade"
	colTotal       = "Valor Total (R$)"
)

func parseTrades(rows [][]string) ([]models.Trade, error) {
	headerIdx, cols := findTradeHeader(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("cei parser: statement has no trade table header")
	}

	var trades []models.Trade
	for _, row := range rows[headerIdx+1:] {
		get := func(label string) string {
			i, ok := cols[label]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		dateCell := get(colDate)
		date, err := ParseTradeDate(dateCell)
		if err != nil {
			// Footer and summary rows have no parsable date; stop at the
			// first of them.
			break
		}

		side, err := normalizeSide(get(colSide))
		if err != nil {
			log.Printf("CEI Parser: skipping row dated %s: %v", strings.TrimSpace(dateCell), err)
			continue
		}

		quantity, err := parseQuantity(get(colQuantity))
		if err != nil {
			log.Printf("CEI Parser: skipping row dated %s: %v", strings.TrimSpace(dateCell), err)
			continue
		}

		gross, err := parseMoney(get(colTotal))
		if err != nil {
			log.Printf("CEI Parser: skipping row dated %s: %v", strings.TrimSpace(dateCell), err)
			continue
		}

		description := validation.SanitizeText(validation.StripUnprintable(get(colDescription)))

		trades = append(trades, models.Trade{
			TradeDate:   date,
			AssetCode:   strings.TrimSpace(get(colCode)),
			Description: strings.TrimSpace(description),
			Side:        side,
			Quantity:    quantity,
			GrossValue:  gross,
		})
	}
	return trades, nil
}

// findTradeHeader locates the trade table's header row and maps each
// known column label to its index.
func findTradeHeader(rows [][]string) (int, map[string]int) {
	labels := []string{colDate, colSide, colCode, colDescription, colQuantity, colTotal}
	for r, row := range rows {
		cols := make(map[string]int)
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			for _, label := range labels {
				if cell == label {
					cols[label] = i
				}
			}
		}
		if _, ok := cols[colDate]; ok && len(cols) >= 4 {
			return r, cols
		}
	}
	return -1, nil
}

// normalizeSide maps the statement's "C/V" cell to a trade side. The
// cells carry surrounding whitespace (" C ", " V ").
func normalizeSide(cell string) (string, error) {
	switch strings.TrimSpace(cell) {
	case "C":
		return models.SideBuy, nil
	case "V":
		return models.SideSell, nil
	default:
		return "", fmt.Errorf("unknown C/V value %q", cell)
	}
}

func parseQuantity(cell string) (int64, error) {
	cleaned := strings.TrimSpace(cell)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	quantity, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", cell, err)
	}
	if quantity < 0 {
		return 0, fmt.Errorf("negative quantity %q", cell)
	}
	return quantity, nil
}

// parseMoney parses a statement money cell, normalizing the pt-BR
// decimal comma ("1.234,56" -> 1234.56) into an exact decimal.
func parseMoney(cell string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(cell)
	cleaned = strings.Trim(cleaned, "\"")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty money value")
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid money value %q: %w", cell, err)
	}
	if value.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative money value %q", cell)
	}
	return value, nil
}
