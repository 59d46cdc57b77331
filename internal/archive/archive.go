package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ledger-engine/pkg/logger"
)

// Archiver persists parse results as JSON files. Archiving is best effort:
// a failed write is logged and never fails the request that produced the
// result.
type Archiver struct {
	enabled bool
	dir     string
}

func NewArchiver(enabled bool, dir string) *Archiver {
	return &Archiver{enabled: enabled, dir: dir}
}

// Store writes the result next to previous parses as
// <source stem>_<documentID>_parsed.json.
func (a *Archiver) Store(sourceFile, documentID string, result any) {
	if !a.enabled {
		return
	}
	log := logger.GetLogger()

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		log.WithError(err).WithField("dir", a.dir).Warn("Could not create archive directory")
		return
	}

	stem := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	if stem == "" {
		stem = "document"
	}
	path := filepath.Join(a.dir, fmt.Sprintf("%s_%s_parsed.json", stem, documentID))

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.WithError(err).WithField("file", path).Warn("Could not encode parse result for archive")
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.WithError(err).WithField("file", path).Warn("Could not archive parse result")
		return
	}
	log.WithField("file", path).Debug("Archived parse result")
}
