package gateway

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeplug-audit/internal/domain"
)

func TestCSVReportWriter_Write(t *testing.T) {
	report := &domain.AuditReport{
		Systems: []string{"GWINNETT", "GISAC"},
		Rows: []domain.ReportRow{
			{
				FileName:        "481ABC0001.xml",
				Serial:          "481ABC0001",
				Alias:           "GCPD UNIT 42",
				PrimaryUnitID:   "1234567",
				UnitIDs:         map[string]string{"GWINNETT": "1234567", "GISAC": "0"},
				Model:           "APX 6000",
				DeviceType:      "Portable",
				SystemContext:   "OK",
				GroupName:       "OK",
				FieldName:       "OK",
				Issue:           "OK",
				Expected:        "OK",
				Actual:          "OK",
				AssetTag:        "GC-1001",
				Location:        "Precinct 1",
				AssignedTo:      "J. Doe",
				InventoryStatus: "Deployed",
			},
			{
				FileName:        "broken.xml",
				Serial:          "broken",
				Alias:           "Unknown",
				PrimaryUnitID:   "0",
				UnitIDs:         map[string]string{"GWINNETT": "0"},
				Model:           "Unknown",
				DeviceType:      "Unknown",
				SystemContext:   "N/A",
				GroupName:       "File Error",
				FieldName:       "N/A",
				Issue:           "Could Not Parse File",
				Expected:        "N/A",
				Actual:          "N/A, with \"quotes\"",
				AssetTag:        "N/A",
				Location:        "N/A",
				AssignedTo:      "N/A",
				InventoryStatus: "N/A",
			},
		},
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	w := NewCSVReportWriter()
	require.NoError(t, w.Write(path, report))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Filename", "Serial Number", "Radio Alias", "Primary Unit ID",
		"Unit ID (GWINNETT)", "Unit ID (GISAC)",
		"Model", "Device Type",
		"System/Zone", "Setting Group", "Setting", "Issue", "Expected Value", "Actual Value",
		"Asset Tag", "Location", "Assigned To", "Inventory Status",
	}, records[0])
	assert.Equal(t, []string{
		"481ABC0001.xml", "481ABC0001", "GCPD UNIT 42", "1234567",
		"1234567", "0",
		"APX 6000", "Portable",
		"OK", "OK", "OK", "OK", "OK", "OK",
		"GC-1001", "Precinct 1", "J. Doe", "Deployed",
	}, records[1])
	assert.Equal(t, "N/A", records[2][5], "system without a value")
	assert.Equal(t, "N/A, with \"quotes\"", records[2][13])
	for _, record := range records {
		assert.Len(t, record, len(records[0]))
	}
}

func TestCSVReportWriter_WriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.csv")
	err := NewCSVReportWriter().Write(path, &domain.AuditReport{})
	assert.Error(t, err)
}

func TestCSVReportWriter_Header(t *testing.T) {
	header := NewCSVReportWriter().Header(nil)
	assert.Equal(t, "Primary Unit ID", header[3])
	assert.Equal(t, "Model", header[4])
}
