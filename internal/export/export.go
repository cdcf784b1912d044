// Package export writes cleaned record sets to the delivery formats: JSON
// for downstream ingestion, CSV for quick review, and XLSX for sharing with
// non-technical stakeholders.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/listings-cli/internal/model"
)

// csvHeader is the review-sheet column set. Kept deliberately narrow: the
// full record lives in the JSON output.
var csvHeader = []string{
	"name", "phone", "website", "website_status",
	"city", "state", "rating", "reviews", "quality_score",
}

// WriteJSON writes the full record set as a JSON array.
func WriteJSON(path string, records []*model.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "export: mkdir for %s", path)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal records")
	}
	return eris.Wrapf(os.WriteFile(path, data, 0o644), "export: write %s", path)
}

// WriteStats writes the run statistics as pretty JSON.
func WriteStats(path string, stats *model.Stats) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "export: mkdir for %s", path)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal stats")
	}
	return eris.Wrapf(os.WriteFile(path, data, 0o644), "export: write %s", path)
}

// WriteCSV writes the review-sheet columns for every record.
func WriteCSV(path string, records []*model.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "export: mkdir for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, r := range records {
		if err := w.Write(recordRow(r)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}

	return eris.Wrapf(f.Close(), "export: close %s", path)
}

// WriteXLSX writes the same review-sheet columns to a single-sheet workbook.
func WriteXLSX(path string, records []*model.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "export: mkdir for %s", path)
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Providers")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range csvHeader {
		header.AddCell().SetString(col)
	}
	for _, r := range records {
		row := sheet.AddRow()
		for _, cell := range recordRow(r) {
			row.AddCell().SetString(cell)
		}
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func recordRow(r *model.Record) []string {
	status := ""
	if r.WebsiteCheck != nil {
		status = r.WebsiteCheck.Verdict()
	}
	return []string{
		r.Name,
		r.Phone,
		r.Website,
		status,
		r.City,
		r.State,
		formatFloat(r.Rating),
		fmt.Sprintf("%d", r.Reviews),
		formatFloat(r.QualityScore),
	}
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%g", v)
}
