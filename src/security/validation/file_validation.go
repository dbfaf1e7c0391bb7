// backend/src/security/validation/file_validation.go
package validation

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/username/ceifolio/backend/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types for statement uploads.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true, // CSVs are often plain text
	"application/vnd.ms-excel": true, // Often used for CSV by older Excel
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// xlsxSignature is the ZIP local-file-header magic that opens every XLSX
// workbook.
var xlsxSignature = []byte("PK\x03\x04")

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	if allowed, exists := AllowedClientContentTypes[strings.ToLower(contentType)]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for statement upload", contentType)
	}
	return nil
}

// isBinaryContent checks if a buffer contains binary control characters
// (like null bytes) which indicate the file is not a text-based CSV.
func isBinaryContent(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return true
	}
	if !utf8.Valid(buf) {
		return true
	}
	return false
}

// ValidateFileContentByMagicBytes checks the actual file content
// signature. An XLSX workbook must open with the ZIP magic; anything else
// must be clean text that sniffs as CSV/plain.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	// Read first 1024 bytes (1KB) for detection
	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// Reset the read pointer so the actual parser can read the full file.
	_, seekErr := file.Seek(0, io.SeekStart)
	if seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n == 0 {
		return "", fmt.Errorf("file is empty")
	}

	head := buffer[:n]

	if bytes.HasPrefix(head, xlsxSignature) {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	}

	// Not a workbook: require clean text content.
	if isBinaryContent(head) {
		logger.L.Warn("File rejected: binary content detected in statement upload")
		return "application/octet-stream", fmt.Errorf("file appears to be binary or executable, not a CSV statement")
	}

	detectedContentType := http.DetectContentType(head)
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0])

	allowedDetectedTypes := map[string]bool{
		"text/plain":      true,
		"text/csv":        true,
		"application/csv": true,
	}

	if !allowedDetectedTypes[detectedContentType] {
		logger.L.Warn("Disallowed detected file content type", "detectedContentType", detectedContentType)
		return detectedContentType, fmt.Errorf("detected file content type '%s' is not allowed", detectedContentType)
	}

	logger.L.Debug("File content type validated", "detectedContentType", detectedContentType)
	return detectedContentType, nil
}
