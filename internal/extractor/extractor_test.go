package extractor_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"ledger-engine/internal/extractor"
)

func TestRawText_PassesThrough(t *testing.T) {
	text, err := extractor.RawText("07 Jun 2024 SM SUPERMARKET 87.32").Text()

	assert.NoError(t, err)
	assert.Equal(t, "07 Jun 2024 SM SUPERMARKET 87.32", text)
}

func TestPDFFile_MissingFile(t *testing.T) {
	_, err := extractor.PDFFile{Path: filepath.Join(t.TempDir(), "nope.pdf")}.Text()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract PDF text")
}
