package domain

import "time"

// FileResult is the outcome of auditing one document.
type FileResult struct {
	File          FileInfo      `json:"file"`
	Metadata      FileMetadata  `json:"metadata"`
	Discrepancies []Discrepancy `json:"discrepancies"`
	// ParseError is set when the document could not be read as XML. No
	// other checks run for such a file.
	ParseError string `json:"parse_error,omitempty"`
}

// Clean reports whether the file produced no findings at all.
func (r FileResult) Clean() bool {
	return r.ParseError == "" && len(r.Discrepancies) == 0
}

// ReportRow is one line of the final report: a finding annotated with the
// file-level context and the inventory record of the radio.
type ReportRow struct {
	FileName      string            `json:"file_name"`
	Serial        string            `json:"serial"`
	Alias         string            `json:"alias"`
	PrimaryUnitID string            `json:"primary_unit_id"`
	UnitIDs       map[string]string `json:"unit_ids"`
	Model         string            `json:"model"`
	DeviceType    string            `json:"device_type"`

	SystemContext string `json:"system_context"`
	GroupName     string `json:"group_name"`
	FieldName     string `json:"field_name"`
	Issue         string `json:"issue"`
	Expected      string `json:"expected"`
	Actual        string `json:"actual"`

	AssetTag        string `json:"asset_tag"`
	Location        string `json:"location"`
	AssignedTo      string `json:"assigned_to"`
	InventoryStatus string `json:"inventory_status"`
}

// Summary provides high-level statistics of the audit run.
type Summary struct {
	RunID             string    `json:"run_id"`
	GeneratedAt       time.Time `json:"generated_at"`
	FilesProcessed    int       `json:"files_processed"`
	FilesWithIssues   int       `json:"files_with_issues"`
	ParseErrors       int       `json:"parse_errors"`
	Discrepancies     int       `json:"discrepancies"`
	InventoryAssets   int       `json:"inventory_assets"`
	InventoryMatched  int       `json:"inventory_matched"`
	AllFilesCompliant bool      `json:"all_files_compliant"`
}

// AuditReport is the top-level structure handed to the report writers.
type AuditReport struct {
	Summary Summary      `json:"summary"`
	Systems []string     `json:"systems"`
	Files   []FileResult `json:"-"`
	Rows    []ReportRow  `json:"-"`
}
