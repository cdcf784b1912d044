// Package source loads raw listing batches from the data directory written
// by the pull command: one JSON array of records per geography.
package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/listings-cli/internal/model"
)

// summaryFile is bookkeeping written by the pull command, not a batch.
const summaryFile = "pull_summary.json"

var titleCaser = cases.Title(language.AmericanEnglish)

// Batch is one geography's worth of raw records.
type Batch struct {
	Source  string
	Records []*model.Record
}

// LoadDir reads every *.json batch in dir, sorted by filename so repeated
// runs see the same input order. The batch's source name comes from the file
// stem: "north_carolina.json" becomes "North Carolina".
func LoadDir(dir string) ([]Batch, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "source: read dir %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || e.Name() == summaryFile {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	batches := make([]Batch, 0, len(files))
	for _, name := range files {
		records, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		batches = append(batches, Batch{
			Source:  SourceName(name),
			Records: records,
		})
	}

	zap.L().Info("source: loaded raw batches",
		zap.String("dir", dir),
		zap.Int("batches", len(batches)),
	)

	return batches, nil
}

// LoadFile reads a single JSON array of records.
func LoadFile(path string) ([]*model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: read %s", path)
	}

	var records []*model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrapf(err, "source: parse %s", path)
	}

	return records, nil
}

// SourceName derives a display name from a batch filename:
// "new_york.json" -> "New York".
func SourceName(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), ".json")
	return titleCaser.String(strings.ReplaceAll(stem, "_", " "))
}
