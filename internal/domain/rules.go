package domain

import (
	"fmt"
	"strings"
)

// Axis controls how far below its context a locator step may look.
type Axis int

const (
	// Descendant matches elements at any depth below the context.
	Descendant Axis = iota
	// Child matches immediate children of the context only.
	Child
)

func (a Axis) prefix() string {
	if a == Child {
		return "./"
	}
	return ".//"
}

// Locator selects zero or more context nodes relative to a starting node.
// The concrete variants are DirectPath, ElementMatch, ContainsAttributeMatch
// and Sequence.
type Locator interface {
	// Steps returns the XPath expressions to evaluate one after another, each
	// relative to every node produced by the previous one.
	Steps() []string
	String() string
}

// DirectPath is a raw XPath expression evaluated against the context node.
type DirectPath struct {
	Expr string
}

func (p DirectPath) Steps() []string { return []string{p.Expr} }
func (p DirectPath) String() string  { return p.Expr }

// ElementMatch selects elements by tag name, optionally requiring an attribute
// to equal Value exactly. An empty Attr matches any element with the tag.
type ElementMatch struct {
	Axis  Axis
	Tag   string
	Attr  string
	Value string
}

func (m ElementMatch) Steps() []string { return []string{m.String()} }

func (m ElementMatch) String() string {
	if m.Attr == "" {
		return m.Axis.prefix() + m.Tag
	}
	return fmt.Sprintf("%s%s[@%s=%s]", m.Axis.prefix(), m.Tag, m.Attr, QuoteLiteral(m.Value))
}

// ContainsAttributeMatch selects elements by tag name whose attribute value
// contains Substring.
type ContainsAttributeMatch struct {
	Axis      Axis
	Tag       string
	Attr      string
	Substring string
}

func (m ContainsAttributeMatch) Steps() []string { return []string{m.String()} }

func (m ContainsAttributeMatch) String() string {
	return fmt.Sprintf("%s%s[contains(@%s, %s)]", m.Axis.prefix(), m.Tag, m.Attr, QuoteLiteral(m.Substring))
}

// Sequence composes locators: each one runs relative to the nodes found by
// the one before it.
type Sequence []Locator

func (s Sequence) Steps() []string {
	var steps []string
	for _, l := range s {
		steps = append(steps, l.Steps()...)
	}
	return steps
}

func (s Sequence) String() string {
	parts := make([]string, 0, len(s))
	for _, l := range s {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, " -> ")
}

// QuoteLiteral renders s as an XPath 1.0 string literal. XPath has no escape
// sequences, so values holding both quote characters are built with concat().
func QuoteLiteral(s string) string {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	args := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			args = append(args, `"'"`)
		}
		if p != "" {
			args = append(args, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}

// FieldExpectation is one expected field value within a rule group.
type FieldExpectation struct {
	Name     string `json:"name"`
	Expected string `json:"expected"`
	Enabled  bool   `json:"enabled"`
}

// RuleGroup is one checkable unit of the catalog.
type RuleGroup struct {
	Name    string
	Locator Locator
	// ContextAncestor names the ancestor element whose ReferenceKey is
	// reported as the system or zone of a finding. Empty means not applicable.
	ContextAncestor string
	Fields          []FieldExpectation
}

// FieldSuppression skips a field for every group when the document's device
// type matches.
type FieldSuppression struct {
	DeviceType string
	Field      string
}

// TalkgroupPolicy describes where talkgroups are declared and used.
type TalkgroupPolicy struct {
	Definitions       Locator
	AliasField        string
	UsageFields       []string
	DefaultIdentifier string
}

// SystemMarker identifies a trunking system by a reference key substring.
type SystemMarker struct {
	Name   string
	Marker string
}

// MetadataPolicy describes where file-level annotations live.
type MetadataPolicy struct {
	AliasLocator      Locator
	AliasField        string
	SystemCandidates  Locator
	UnitIDField       string
	Systems           []SystemMarker
	MissingUnitIDText string
}

// PrimarySystem returns the first configured system, which feeds the
// primary unit ID column.
func (p MetadataPolicy) PrimarySystem() (SystemMarker, bool) {
	if len(p.Systems) == 0 {
		return SystemMarker{}, false
	}
	return p.Systems[0], true
}

// Catalog is the immutable set of checks and policies applied to every
// document.
type Catalog struct {
	Groups       []RuleGroup
	Suppressions []FieldSuppression
	Talkgroups   TalkgroupPolicy
	Metadata     MetadataPolicy
	Profiles     ProfileTable
}

// Suppressed reports whether field is exempt for deviceType.
func (c *Catalog) Suppressed(deviceType, field string) bool {
	for _, s := range c.Suppressions {
		if s.DeviceType == deviceType && s.Field == field {
			return true
		}
	}
	return false
}
