// Package catalog loads the rule catalog from YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"codeplug-audit/internal/document"
	"codeplug-audit/internal/domain"
)

//go:embed default.yaml
var defaultCatalog []byte

// Default returns the catalog shipped with the binary.
func Default() (*domain.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates the catalog at path.
func Load(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*domain.Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return f.build()
}

type catalogFile struct {
	Groups       []groupSpec       `yaml:"groups"`
	Suppressions []suppressionSpec `yaml:"suppressions"`
	Talkgroups   talkgroupSpec     `yaml:"talkgroups"`
	Metadata     metadataSpec      `yaml:"metadata"`
	Profiles     []profileSpec     `yaml:"profiles"`
}

type groupSpec struct {
	Name    string    `yaml:"name"`
	Locate  []step    `yaml:"locate"`
	Context string    `yaml:"context"`
	Fields  fieldList `yaml:"fields"`
}

type suppressionSpec struct {
	DeviceType string `yaml:"device_type"`
	Field      string `yaml:"field"`
}

type talkgroupSpec struct {
	Definitions       []step   `yaml:"definitions"`
	AliasField        string   `yaml:"alias_field"`
	UsageFields       []string `yaml:"usage_fields"`
	DefaultIdentifier string   `yaml:"default_identifier"`
}

type metadataSpec struct {
	Alias struct {
		Locate []step `yaml:"locate"`
		Field  string `yaml:"field"`
	} `yaml:"alias"`
	UnitIDs struct {
		Candidates []step `yaml:"candidates"`
		Field      string `yaml:"field"`
		Missing    string `yaml:"missing"`
		Systems    []struct {
			Name   string `yaml:"name"`
			Marker string `yaml:"marker"`
		} `yaml:"systems"`
	} `yaml:"unit_ids"`
}

type profileSpec struct {
	Prefix     string `yaml:"prefix"`
	Model      string `yaml:"model"`
	DeviceType string `yaml:"device_type"`
}

func (f catalogFile) build() (*domain.Catalog, error) {
	c := &domain.Catalog{}

	names := make(map[string]struct{}, len(f.Groups))
	for i, g := range f.Groups {
		if g.Name == "" {
			return nil, fmt.Errorf("group #%d: name is required", i+1)
		}
		if _, ok := names[g.Name]; ok {
			return nil, fmt.Errorf("group %q: defined more than once", g.Name)
		}
		names[g.Name] = struct{}{}

		loc, err := buildLocator(g.Locate)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		if len(g.Fields) == 0 {
			return nil, fmt.Errorf("group %q: no fields", g.Name)
		}
		c.Groups = append(c.Groups, domain.RuleGroup{
			Name:            g.Name,
			Locator:         loc,
			ContextAncestor: g.Context,
			Fields:          []domain.FieldExpectation(g.Fields),
		})
	}

	for _, s := range f.Suppressions {
		if s.DeviceType == "" || s.Field == "" {
			return nil, errors.New("suppression needs both device_type and field")
		}
		c.Suppressions = append(c.Suppressions, domain.FieldSuppression{DeviceType: s.DeviceType, Field: s.Field})
	}

	if len(f.Talkgroups.Definitions) > 0 {
		loc, err := buildLocator(f.Talkgroups.Definitions)
		if err != nil {
			return nil, fmt.Errorf("talkgroups: %w", err)
		}
		if f.Talkgroups.AliasField == "" {
			return nil, errors.New("talkgroups: alias_field is required")
		}
		c.Talkgroups = domain.TalkgroupPolicy{
			Definitions:       loc,
			AliasField:        f.Talkgroups.AliasField,
			UsageFields:       f.Talkgroups.UsageFields,
			DefaultIdentifier: f.Talkgroups.DefaultIdentifier,
		}
	}

	meta, err := f.Metadata.build()
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	c.Metadata = meta

	for _, p := range f.Profiles {
		if p.Prefix == "" {
			return nil, errors.New("profile: prefix is required")
		}
		c.Profiles = append(c.Profiles, domain.SerialPrefix{
			Prefix:  p.Prefix,
			Profile: domain.DeviceProfile{Model: p.Model, DeviceType: p.DeviceType},
		})
	}

	return c, nil
}

func (m metadataSpec) build() (domain.MetadataPolicy, error) {
	p := domain.MetadataPolicy{
		AliasField:        m.Alias.Field,
		UnitIDField:       m.UnitIDs.Field,
		MissingUnitIDText: m.UnitIDs.Missing,
	}
	if len(m.Alias.Locate) > 0 {
		loc, err := buildLocator(m.Alias.Locate)
		if err != nil {
			return p, fmt.Errorf("alias: %w", err)
		}
		p.AliasLocator = loc
	}
	if len(m.UnitIDs.Candidates) > 0 {
		loc, err := buildLocator(m.UnitIDs.Candidates)
		if err != nil {
			return p, fmt.Errorf("unit_ids: %w", err)
		}
		p.SystemCandidates = loc
	}
	seen := make(map[string]struct{})
	for _, s := range m.UnitIDs.Systems {
		if s.Name == "" || s.Marker == "" {
			return p, errors.New("unit_ids: system needs both name and marker")
		}
		if _, ok := seen[s.Name]; ok {
			return p, fmt.Errorf("unit_ids: system %q defined more than once", s.Name)
		}
		seen[s.Name] = struct{}{}
		p.Systems = append(p.Systems, domain.SystemMarker{Name: s.Name, Marker: s.Marker})
	}
	return p, nil
}

func buildLocator(steps []step) (domain.Locator, error) {
	if len(steps) == 0 {
		return nil, errors.New("locate: at least one step is required")
	}
	seq := make(domain.Sequence, 0, len(steps))
	for i, s := range steps {
		l, err := s.locator()
		if err != nil {
			return nil, fmt.Errorf("locate step #%d: %w", i+1, err)
		}
		seq = append(seq, l)
	}

	var loc domain.Locator = seq
	if len(seq) == 1 {
		loc = seq[0]
	}
	if err := document.Validate(loc); err != nil {
		return nil, err
	}
	return loc, nil
}
