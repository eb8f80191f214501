package domain

import (
	"path/filepath"

	"github.com/mouse-blink/nodecov/internal/adapter"
	m "github.com/mouse-blink/nodecov/internal/model"
)

// FilterResults keeps the records that belong to user files: those whose URL
// names an absolute filesystem path other than self. Input order is kept.
func FilterResults(records []m.CoverageRecord, self m.Path) []m.CoverageRecord {
	filtered := make([]m.CoverageRecord, 0, len(records))

	for _, record := range records {
		path, ok := recordPath(record)
		if !ok || path == self {
			continue
		}

		filtered = append(filtered, record)
	}

	return filtered
}

// recordPath returns the filesystem path a record was loaded from, if it has one.
func recordPath(record m.CoverageRecord) (m.Path, bool) {
	path, ok := adapter.FileURLToPath(record.URL)
	if !ok || !filepath.IsAbs(path) {
		return "", false
	}

	return m.Path(path), true
}
