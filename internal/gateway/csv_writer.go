package gateway

import (
	"encoding/csv"
	"fmt"
	"os"

	"codeplug-audit/internal/domain"
)

// CSVReportWriter persists report rows as a CSV file.
type CSVReportWriter struct{}

// NewCSVReportWriter creates a new writer instance.
func NewCSVReportWriter() *CSVReportWriter {
	return &CSVReportWriter{}
}

// Header returns the fixed report header. One unit ID column is added per
// configured trunking system.
func (w *CSVReportWriter) Header(systems []string) []string {
	header := []string{"Filename", "Serial Number", "Radio Alias", "Primary Unit ID"}
	for _, s := range systems {
		header = append(header, "Unit ID ("+s+")")
	}
	return append(header,
		"Model", "Device Type",
		"System/Zone", "Setting Group", "Setting", "Issue", "Expected Value", "Actual Value",
		"Asset Tag", "Location", "Assigned To", "Inventory Status",
	)
}

// Write creates path and writes the header followed by every row.
func (w *CSVReportWriter) Write(path string, report *domain.AuditReport) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report %s: %w", path, cerr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(w.Header(report.Systems)); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(w.record(row, report.Systems)); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report %s: %w", path, err)
	}
	return nil
}

func (w *CSVReportWriter) record(row domain.ReportRow, systems []string) []string {
	record := []string{row.FileName, row.Serial, row.Alias, row.PrimaryUnitID}
	for _, s := range systems {
		id, ok := row.UnitIDs[s]
		if !ok {
			id = domain.NotApplicable
		}
		record = append(record, id)
	}
	return append(record,
		row.Model, row.DeviceType,
		row.SystemContext, row.GroupName, row.FieldName, row.Issue, row.Expected, row.Actual,
		row.AssetTag, row.Location, row.AssignedTo, row.InventoryStatus,
	)
}
