package domain

import "encoding/json"

const (
	// NotApplicable fills columns that have no meaning for a finding.
	NotApplicable = "N/A"
	// AllClear fills the variable columns of a file with no findings.
	AllClear = "OK"
	// UnknownValue is the default for metadata that could not be resolved.
	UnknownValue = "Unknown"
)

// IssueKind classifies a finding.
type IssueKind int

const (
	SectionMissing IssueKind = iota + 1
	SettingMissing
	IncorrectValue
	FileParseError
	UndeclaredIdentifier
	InconsistentDefinition
)

var issueLabels = map[IssueKind]string{
	SectionMissing:         "Section Not Found",
	SettingMissing:         "Setting Not Found",
	IncorrectValue:         "Incorrect Value",
	FileParseError:         "Could Not Parse File",
	UndeclaredIdentifier:   "Undeclared Talkgroup",
	InconsistentDefinition: "Inconsistent Talkgroup Definition",
}

func (k IssueKind) String() string {
	if s, ok := issueLabels[k]; ok {
		return s
	}
	return "Unknown Issue"
}

func (k IssueKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Discrepancy is one reportable finding inside a document.
type Discrepancy struct {
	SystemContext string    `json:"system_context"`
	GroupName     string    `json:"group_name"`
	FieldName     string    `json:"field_name"`
	Issue         IssueKind `json:"issue"`
	Expected      string    `json:"expected"`
	Actual        string    `json:"actual"`
}
