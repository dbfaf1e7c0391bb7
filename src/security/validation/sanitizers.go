// backend/src/security/validation/sanitizers.go
package validation

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// Strict sanitization policy, initialized once at startup.
	strictHTMLPolicy *bluemonday.Policy
)

func init() {
	strictHTMLPolicy = bluemonday.StrictPolicy() // Removes all HTML tags
}

// SanitizeText removes all HTML tags and attributes from an input string.
// Statement files are attacker-controllable input; asset descriptions get
// scrubbed before they reach any report.
func SanitizeText(s string) string {
	return strictHTMLPolicy.Sanitize(s)
}

// SanitizeForFormulaInjection prepends a single quote if the string starts
// with a formula character. This prevents CSV Injection (Formula
// Injection) when report rows are opened in Excel/Sheets.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimSpace(s)

	if len(trimmed) == 0 {
		return s
	}

	firstChar := rune(trimmed[0])

	// Characters that trigger formula execution in Excel/LibreOffice/Sheets
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' || firstChar == '\t' || firstChar == '\r' {
		return "'" + s
	}

	return s
}

// StripUnprintable removes non-printable characters, allowing common
// whitespace like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
