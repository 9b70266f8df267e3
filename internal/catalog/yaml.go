package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"codeplug-audit/internal/domain"
)

// step is one locator step as written in the catalog. Exactly one of XPath
// and Tag is set; Equals and Contains are mutually exclusive.
type step struct {
	XPath    string  `yaml:"xpath"`
	Tag      string  `yaml:"tag"`
	Axis     string  `yaml:"axis"`
	Attr     string  `yaml:"attr"`
	Equals   *string `yaml:"equals"`
	Contains *string `yaml:"contains"`
}

func (s step) locator() (domain.Locator, error) {
	if s.XPath != "" {
		if s.Tag != "" || s.Attr != "" || s.Equals != nil || s.Contains != nil {
			return nil, errors.New("xpath cannot be combined with tag, attr, equals or contains")
		}
		return domain.DirectPath{Expr: s.XPath}, nil
	}
	if s.Tag == "" {
		return nil, errors.New("either xpath or tag is required")
	}

	var axis domain.Axis
	switch s.Axis {
	case "", "descendant":
		axis = domain.Descendant
	case "child":
		axis = domain.Child
	default:
		return nil, fmt.Errorf("unknown axis %q", s.Axis)
	}

	switch {
	case s.Equals != nil && s.Contains != nil:
		return nil, errors.New("equals and contains are mutually exclusive")
	case (s.Equals != nil || s.Contains != nil) && s.Attr == "":
		return nil, errors.New("attr is required with equals or contains")
	case s.Contains != nil:
		return domain.ContainsAttributeMatch{Axis: axis, Tag: s.Tag, Attr: s.Attr, Substring: *s.Contains}, nil
	case s.Equals != nil:
		return domain.ElementMatch{Axis: axis, Tag: s.Tag, Attr: s.Attr, Value: *s.Equals}, nil
	case s.Attr != "":
		return nil, errors.New("attr needs equals or contains")
	}
	return domain.ElementMatch{Axis: axis, Tag: s.Tag}, nil
}

// fieldList keeps the catalog order of a group's fields. Each entry is either
// `name: expected` or `name: {expected: ..., enabled: false}`. Scalars are
// kept verbatim, so 851.012500 stays a string with its trailing zeros.
type fieldList []domain.FieldExpectation

func (l *fieldList) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", n.Line)
	}

	seen := make(map[string]struct{}, len(n.Content)/2)
	out := make(fieldList, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return fmt.Errorf("line %d: field name must be a non-empty string", key.Line)
		}
		if _, ok := seen[key.Value]; ok {
			return fmt.Errorf("line %d: field %q defined more than once", key.Line, key.Value)
		}
		seen[key.Value] = struct{}{}

		f := domain.FieldExpectation{Name: key.Value, Enabled: true}
		switch val.Kind {
		case yaml.ScalarNode:
			f.Expected = val.Value
		case yaml.MappingNode:
			var spec struct {
				Expected yaml.Node `yaml:"expected"`
				Enabled  *bool     `yaml:"enabled"`
			}
			if err := val.Decode(&spec); err != nil {
				return fmt.Errorf("line %d: field %q: %w", val.Line, key.Value, err)
			}
			if spec.Expected.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: field %q: expected must be a scalar", val.Line, key.Value)
			}
			f.Expected = spec.Expected.Value
			if spec.Enabled != nil {
				f.Enabled = *spec.Enabled
			}
		default:
			return fmt.Errorf("line %d: field %q: unsupported value", val.Line, key.Value)
		}
		out = append(out, f)
	}
	*l = out
	return nil
}
