package usecase

import (
	"codeplug-audit/internal/domain"
)

const fileErrorGroup = "File Error"

// ReportAssembler turns per-file results into report rows.
type ReportAssembler struct {
	metadata domain.MetadataPolicy
}

// NewReportAssembler creates an assembler that renders unit IDs per the policy.
func NewReportAssembler(metadata domain.MetadataPolicy) *ReportAssembler {
	return &ReportAssembler{metadata: metadata}
}

// Assemble emits one all-clear row for a clean file, a single parse-error row
// for an unreadable file, and otherwise one row per discrepancy. Inventory
// columns are merged by serial.
func (a *ReportAssembler) Assemble(results []domain.FileResult, assets domain.AssetIndex) []domain.ReportRow {
	var rows []domain.ReportRow
	for _, res := range results {
		base := a.annotate(res, assets)

		switch {
		case res.ParseError != "":
			rows = append(rows, withFinding(base, domain.Discrepancy{
				SystemContext: domain.NotApplicable,
				GroupName:     fileErrorGroup,
				FieldName:     domain.NotApplicable,
				Issue:         domain.FileParseError,
				Expected:      domain.NotApplicable,
				Actual:        domain.NotApplicable,
			}))
		case len(res.Discrepancies) == 0:
			row := base
			row.SystemContext = domain.AllClear
			row.GroupName = domain.AllClear
			row.FieldName = domain.AllClear
			row.Issue = domain.AllClear
			row.Expected = domain.AllClear
			row.Actual = domain.AllClear
			rows = append(rows, row)
		default:
			for _, d := range res.Discrepancies {
				rows = append(rows, withFinding(base, d))
			}
		}
	}
	return rows
}

func (a *ReportAssembler) annotate(res domain.FileResult, assets domain.AssetIndex) domain.ReportRow {
	row := domain.ReportRow{
		FileName:      res.File.Name,
		Serial:        res.File.Serial,
		Alias:         res.Metadata.Alias,
		PrimaryUnitID: domain.NotApplicable,
		UnitIDs:       make(map[string]string, len(a.metadata.Systems)),
		Model:         res.File.Profile.Model,
		DeviceType:    res.File.Profile.DeviceType,
	}
	if row.Alias == "" {
		row.Alias = domain.UnknownValue
	}
	for _, sys := range a.metadata.Systems {
		row.UnitIDs[sys.Name] = res.Metadata.UnitID(sys.Name).Display(a.metadata.MissingUnitIDText)
	}
	if primary, ok := a.metadata.PrimarySystem(); ok {
		row.PrimaryUnitID = row.UnitIDs[primary.Name]
	}

	asset, ok := assets.Find(res.File.Serial)
	if !ok {
		row.AssetTag = domain.NotApplicable
		row.Location = domain.NotApplicable
		row.AssignedTo = domain.NotApplicable
		row.InventoryStatus = domain.NotApplicable
		return row
	}
	row.AssetTag = orNotApplicable(asset.AssetTag)
	row.Location = orNotApplicable(asset.Location)
	row.AssignedTo = orNotApplicable(asset.AssignedTo)
	row.InventoryStatus = orNotApplicable(asset.Status)
	return row
}

func withFinding(row domain.ReportRow, d domain.Discrepancy) domain.ReportRow {
	row.SystemContext = d.SystemContext
	row.GroupName = d.GroupName
	row.FieldName = d.FieldName
	row.Issue = d.Issue.String()
	row.Expected = d.Expected
	row.Actual = d.Actual
	return row
}

func orNotApplicable(s string) string {
	if s == "" {
		return domain.NotApplicable
	}
	return s
}
