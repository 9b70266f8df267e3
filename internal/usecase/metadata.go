package usecase

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/text/cases"

	"codeplug-audit/internal/document"
	"codeplug-audit/internal/domain"
)

// MetadataExtractor reads the radio alias and per-system unit IDs used to
// annotate every report row of a document.
type MetadataExtractor struct {
	policy domain.MetadataPolicy
	logger *slog.Logger
}

// NewMetadataExtractor creates an extractor for the given document layout.
func NewMetadataExtractor(policy domain.MetadataPolicy, logger *slog.Logger) *MetadataExtractor {
	return &MetadataExtractor{policy: policy, logger: logger}
}

// Extract resolves the alias and one unit ID per configured system. Systems
// are resolved independently of each other.
func (m *MetadataExtractor) Extract(doc *document.Document) domain.FileMetadata {
	meta := domain.FileMetadata{Alias: m.alias(doc)}
	// Casers keep state and cannot be shared across goroutines.
	fold := cases.Fold()

	var candidates []candidate
	if m.policy.SystemCandidates != nil {
		nodes, err := doc.FindAll(m.policy.SystemCandidates, nil)
		if err != nil {
			m.logger.Warn("system candidate locator failed", "error", err)
		}
		for _, n := range nodes {
			key, ok := doc.ReferenceKey(n)
			if !ok {
				continue
			}
			candidates = append(candidates, candidate{key: fold.String(key), node: n})
		}
	}

	for _, sys := range m.policy.Systems {
		meta.UnitIDs = append(meta.UnitIDs, m.unitID(doc, fold.String(sys.Marker), sys.Name, candidates))
	}
	return meta
}

type candidate struct {
	key  string
	node *xmlquery.Node
}

func (m *MetadataExtractor) alias(doc *document.Document) string {
	if m.policy.AliasLocator == nil || m.policy.AliasField == "" {
		return domain.UnknownValue
	}
	nodes, err := doc.FindAll(m.policy.AliasLocator, nil)
	if err != nil {
		m.logger.Warn("alias locator failed", "error", err)
		return domain.UnknownValue
	}
	for _, n := range nodes {
		if text, ok := doc.ReadFieldText(n, m.policy.AliasField); ok {
			if text = strings.TrimSpace(text); text != "" {
				return text
			}
		}
	}
	return domain.UnknownValue
}

func (m *MetadataExtractor) unitID(doc *document.Document, marker, system string, candidates []candidate) domain.UnitID {
	id := domain.UnitID{System: system}
	for _, c := range candidates {
		if !strings.Contains(c.key, marker) {
			continue
		}
		text, ok := doc.ReadFieldText(c.node, m.policy.UnitIDField)
		if !ok {
			return id
		}
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			m.logger.Debug("unit id is not a number", "system", system, "value", text)
			return id
		}
		id.Value, id.Found = v, true
		return id
	}
	return id
}
