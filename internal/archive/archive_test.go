package archive_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"ledger-engine/internal/archive"
)

func TestStore_WritesParseResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "parsed")
	a := archive.NewArchiver(true, dir)

	a.Store("statement_june.pdf", "doc-123", map[string]any{"success": true})

	path := filepath.Join(dir, "statement_june_doc-123_parsed.json")
	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var stored map[string]any
	assert.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, true, stored["success"])
}

func TestStore_EmptyFilenameUsesFallbackStem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "parsed")
	a := archive.NewArchiver(true, dir)

	a.Store("", "doc-456", map[string]any{"success": true})

	_, err := os.Stat(filepath.Join(dir, "document_doc-456_parsed.json"))
	assert.NoError(t, err)
}

func TestStore_DisabledWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "parsed")
	a := archive.NewArchiver(false, dir)

	a.Store("statement_june.pdf", "doc-789", map[string]any{"success": true})

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
