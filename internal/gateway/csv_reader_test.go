package gateway

import (
	"context"
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeplug-audit/internal/domain"
)

func TestCSVInventoryFile_Assets(t *testing.T) {
	tests := []struct {
		name     string
		csvData  [][]string
		expected []domain.Asset
		wantErr  bool
	}{
		{
			name: "all columns",
			csvData: [][]string{
				{"serial", "asset_tag", "location", "assigned_to", "status"},
				{"481ABC0001", "GC-1001", "Precinct 1", "J. Doe", "Deployed"},
				{"500ABC0002", "GC-1002", "Fleet", "", "Ready to Deploy"},
			},
			expected: []domain.Asset{
				{Serial: "481ABC0001", AssetTag: "GC-1001", Location: "Precinct 1", AssignedTo: "J. Doe", Status: "Deployed"},
				{Serial: "500ABC0002", AssetTag: "GC-1002", Location: "Fleet", Status: "Ready to Deploy"},
			},
		},
		{
			name: "columns in any order and case",
			csvData: [][]string{
				{"Status", " Serial ", "Asset_Tag"},
				{"Deployed", "481ABC0001", "GC-1001"},
			},
			expected: []domain.Asset{
				{Serial: "481ABC0001", AssetTag: "GC-1001", Status: "Deployed"},
			},
		},
		{
			name: "short rows and empty serials",
			csvData: [][]string{
				{"serial", "asset_tag", "location"},
				{"481ABC0001"},
				{"", "GC-9999", "Nowhere"},
			},
			expected: []domain.Asset{
				{Serial: "481ABC0001"},
			},
		},
		{
			name: "header only",
			csvData: [][]string{
				{"serial", "asset_tag"},
			},
			expected: nil,
		},
		{
			name: "missing serial column",
			csvData: [][]string{
				{"asset_tag", "location"},
				{"GC-1001", "Precinct 1"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempCSV(t, tt.csvData)

			got, err := NewCSVInventoryFile(path).Assets(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestCSVInventoryFile_FileErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("file not found", func(t *testing.T) {
		_, err := NewCSVInventoryFile("nonexistent_inventory.csv").Assets(ctx)
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := createTempCSV(t, nil)
		_, err := NewCSVInventoryFile(path).Assets(ctx)
		assert.Error(t, err)
	})
}

func createTempCSV(t *testing.T, data [][]string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "test_*.csv")
	if err != nil {
		t.Fatalf("Failed to create temp CSV file: %v", err)
	}
	defer tmpFile.Close()

	writer := csv.NewWriter(tmpFile)
	if err := writer.WriteAll(data); err != nil {
		t.Fatalf("Failed to write temp CSV file: %v", err)
	}
	return tmpFile.Name()
}
