package validation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seekableReader wraps file content for magic-byte validation tests.
func seekable(content []byte) *bytes.Reader {
	return bytes.NewReader(content)
}

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType("text/csv"))
	assert.NoError(t, ValidateClientContentType("TEXT/CSV"))
	assert.NoError(t, ValidateClientContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))

	err := ValidateClientContentType("application/x-msdownload")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestValidateFileContentAcceptsCSVText(t *testing.T) {
	content := []byte("Data Negócio;C/V;Código\n20/02/19; C ;BOVA11\n")
	r := seekable(content)

	detected, err := ValidateFileContentByMagicBytes(r)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", detected)

	// The reader is rewound for the parser.
	rest := make([]byte, len(content))
	n, _ := r.Read(rest)
	assert.Equal(t, len(content), n)
}

func TestValidateFileContentAcceptsXLSXSignature(t *testing.T) {
	content := append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0x01}, 64)...)
	detected, err := ValidateFileContentByMagicBytes(seekable(content))
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", detected)
}

func TestValidateFileContentRejectsBinary(t *testing.T) {
	content := []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01, 0x02}
	_, err := ValidateFileContentByMagicBytes(seekable(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary")
}

func TestValidateFileContentRejectsEmpty(t *testing.T) {
	_, err := ValidateFileContentByMagicBytes(seekable(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateFileContentRejectsHTML(t *testing.T) {
	content := []byte("<!DOCTYPE html><html><body>x</body></html>" + strings.Repeat(" ", 16))
	_, err := ValidateFileContentByMagicBytes(seekable(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}
