// Package document indexes a parsed codeplug XML tree for the audit checks.
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"codeplug-audit/internal/domain"
)

const (
	fieldTag         = "Field"
	nameAttr         = "Name"
	referenceKeyAttr = "ReferenceKey"
)

// ErrMalformed is returned when the input is not well-formed XML.
var ErrMalformed = errors.New("malformed document")

// Document wraps a parsed configuration tree. A Document is not safe for
// concurrent use; every input file gets its own.
type Document struct {
	root  *xmlquery.Node
	exprs map[string]*xpath.Expr
}

// Parse reads a whole XML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := checkTopLevel(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &Document{root: root, exprs: make(map[string]*xpath.Expr)}, nil
}

// Root returns the document node.
func (d *Document) Root() *xmlquery.Node {
	return d.root
}

// FindAll evaluates loc starting at from, or at the document root when from is
// nil. Each locator step runs against every node found by the previous step;
// results keep discovery order and contain no duplicates.
func (d *Document) FindAll(loc domain.Locator, from *xmlquery.Node) ([]*xmlquery.Node, error) {
	if from == nil {
		from = d.root
	}
	steps := loc.Steps()
	if len(steps) == 0 {
		return nil, fmt.Errorf("locator %q has no steps", loc.String())
	}

	current := []*xmlquery.Node{from}
	for _, step := range steps {
		expr, err := d.compile(step)
		if err != nil {
			return nil, err
		}
		seen := make(map[*xmlquery.Node]struct{})
		var next []*xmlquery.Node
		for _, ctx := range current {
			for _, n := range xmlquery.QuerySelectorAll(ctx, expr) {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				next = append(next, n)
			}
		}
		if len(next) == 0 {
			return nil, nil
		}
		current = next
	}
	return current, nil
}

// FindAncestor returns the ReferenceKey of the nearest ancestor element named
// name that carries one.
func (d *Document) FindAncestor(n *xmlquery.Node, name string) (string, bool) {
	for p := parentElement(n); p != nil; p = parentElement(p) {
		if p.Data != name {
			continue
		}
		if key, ok := attr(p, referenceKeyAttr); ok {
			return key, true
		}
	}
	return "", false
}

// NearestReferenceKey returns the ReferenceKey of the closest ancestor that
// has the attribute, whatever its element name.
func (d *Document) NearestReferenceKey(n *xmlquery.Node) (string, bool) {
	for p := parentElement(n); p != nil; p = parentElement(p) {
		if key, ok := attr(p, referenceKeyAttr); ok {
			return key, true
		}
	}
	return "", false
}

// ReferenceKey returns the node's own ReferenceKey attribute.
func (d *Document) ReferenceKey(n *xmlquery.Node) (string, bool) {
	return attr(n, referenceKeyAttr)
}

// ReadFieldText returns the text of the first Field named field below n.
// A present but empty field yields ("", true).
func (d *Document) ReadFieldText(n *xmlquery.Node, field string) (string, bool) {
	expr, err := d.compile(fieldPath(field))
	if err != nil {
		return "", false
	}
	f := xmlquery.QuerySelector(n, expr)
	if f == nil {
		return "", false
	}
	return ownText(f), true
}

// Text returns the text a field holds directly, ignoring nested elements.
func (d *Document) Text(n *xmlquery.Node) string {
	return ownText(n)
}

// Fields returns every Field named field in the document, in document order.
func (d *Document) Fields(field string) []*xmlquery.Node {
	expr, err := d.compile(fieldPath(field))
	if err != nil {
		return nil
	}
	return xmlquery.QuerySelectorAll(d.root, expr)
}

func (d *Document) compile(expr string) (*xpath.Expr, error) {
	if e, ok := d.exprs[expr]; ok {
		return e, nil
	}
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expr, err)
	}
	d.exprs[expr] = e
	return e, nil
}

// Validate checks that every step of loc compiles.
func Validate(loc domain.Locator) error {
	steps := loc.Steps()
	if len(steps) == 0 {
		return fmt.Errorf("locator %q has no steps", loc.String())
	}
	for _, step := range steps {
		if _, err := xpath.Compile(step); err != nil {
			return fmt.Errorf("invalid expression %q: %w", step, err)
		}
	}
	return nil
}

func fieldPath(field string) string {
	return ".//" + fieldTag + "[@" + nameAttr + "=" + domain.QuoteLiteral(field) + "]"
}

func parentElement(n *xmlquery.Node) *xmlquery.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == xmlquery.ElementNode {
			return p
		}
	}
	return nil
}

func attr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// checkTopLevel requires exactly one root element and no character data
// outside of it.
func checkTopLevel(root *xmlquery.Node) error {
	elements := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			elements++
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) != "" {
				return errors.New("content outside the root element")
			}
		}
	}
	switch elements {
	case 0:
		return errors.New("no root element")
	case 1:
		return nil
	default:
		return fmt.Errorf("%d root elements", elements)
	}
}

// ownText returns the leading text of n up to its first child element.
func ownText(n *xmlquery.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			break
		}
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
