package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codeplug-audit/internal/domain"
)

// Inventory export columns. The header row decides their positions.
const (
	columnSerial     = "serial"
	columnAssetTag   = "asset_tag"
	columnLocation   = "location"
	columnAssignedTo = "assigned_to"
	columnStatus     = "status"
)

// CSVInventoryFile implements the InventoryProvider interface for a local
// inventory export.
type CSVInventoryFile struct {
	path string
}

// NewCSVInventoryFile creates a new provider reading path.
func NewCSVInventoryFile(path string) *CSVInventoryFile {
	return &CSVInventoryFile{path: path}
}

// Assets reads and parses the inventory CSV file. Only the serial column is
// required; rows with an empty serial are skipped.
func (r *CSVInventoryFile) Assets(ctx context.Context) ([]domain.Asset, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file %s: %w", r.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", r.path, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns[columnSerial]; !ok {
		return nil, fmt.Errorf("inventory file %s has no %q column", r.path, columnSerial)
	}

	get := func(record []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var assets []domain.Asset
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", r.path, err)
		}

		asset := domain.Asset{
			Serial:     get(record, columnSerial),
			AssetTag:   get(record, columnAssetTag),
			Location:   get(record, columnLocation),
			AssignedTo: get(record, columnAssignedTo),
			Status:     get(record, columnStatus),
		}
		if asset.Serial == "" {
			continue
		}
		assets = append(assets, asset)
	}
	return assets, nil
}
