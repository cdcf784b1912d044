package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/listings-cli/internal/model"
)

func sampleRecords() []*model.Record {
	return []*model.Record{
		{
			Name: "Acme Dumpsters", Phone: "4155550100",
			Website: "https://acme.example.com",
			City:    "Columbus", State: "OH",
			Rating: 4.8, Reviews: 60, QualityScore: 0.85,
			WebsiteCheck: &model.WebsiteCheck{URL: "https://acme.example.com", StatusCode: 200, Reachable: true},
		},
		{
			Name: "Budget Bins", Phone: "4155550199",
			City: "Austin", State: "TX",
			QualityScore: 0.42,
			WebsiteCheck: &model.WebsiteCheck{Status: model.CheckStatusTimeout},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "providers.csv")
	require.NoError(t, WriteCSV(path, sampleRecords()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t,
		[]string{"Acme Dumpsters", "4155550100", "https://acme.example.com", "reachable", "Columbus", "OH", "4.8", "60", "0.85"},
		rows[1],
	)
	assert.Equal(t, "unreachable:timeout", rows[2][3])
	assert.Equal(t, "0", rows[2][7])
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.csv")
	require.NoError(t, WriteCSV(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.xlsx")
	require.NoError(t, WriteXLSX(path, sampleRecords()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Providers", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "name", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Acme Dumpsters", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "reachable", sheet.Rows[1].Cells[3].String())
	assert.Equal(t, "Budget Bins", sheet.Rows[2].Cells[0].String())
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.json")
	require.NoError(t, WriteJSON(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []*model.Record
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Dumpsters", got[0].Name)
	assert.Equal(t, 0.85, got[0].QualityScore)
	require.NotNil(t, got[0].WebsiteCheck)
	assert.True(t, got[0].WebsiteCheck.Reachable)
}

func TestWriteStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	stats := model.NewStats()
	stats.TotalRaw = 100
	stats.TotalClean = 80
	require.NoError(t, WriteStats(path, stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got model.Stats
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 100, got.TotalRaw)
	assert.Equal(t, 80, got.TotalClean)
}
