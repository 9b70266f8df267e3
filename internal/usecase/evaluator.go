package usecase

import (
	"log/slog"

	"codeplug-audit/internal/document"
	"codeplug-audit/internal/domain"
)

// RuleEvaluator compares the fields under a rule group's context nodes with
// their expected values.
type RuleEvaluator struct {
	catalog *domain.Catalog
	logger  *slog.Logger
}

// NewRuleEvaluator creates an evaluator bound to the catalog's suppression policy.
func NewRuleEvaluator(catalog *domain.Catalog, logger *slog.Logger) *RuleEvaluator {
	return &RuleEvaluator{catalog: catalog, logger: logger}
}

// Evaluate checks one group against doc. deviceType selects the field
// suppressions that apply to this document.
func (e *RuleEvaluator) Evaluate(doc *document.Document, group domain.RuleGroup, deviceType string) []domain.Discrepancy {
	contexts, err := doc.FindAll(group.Locator, nil)
	if err != nil {
		e.logger.Warn("rule group locator failed", "group", group.Name, "locator", group.Locator.String(), "error", err)
	}
	if len(contexts) == 0 {
		return []domain.Discrepancy{{
			SystemContext: domain.NotApplicable,
			GroupName:     group.Name,
			FieldName:     domain.NotApplicable,
			Issue:         domain.SectionMissing,
			Expected:      domain.NotApplicable,
			Actual:        domain.NotApplicable,
		}}
	}

	var found []domain.Discrepancy
	for _, node := range contexts {
		systemContext := domain.NotApplicable
		if group.ContextAncestor != "" {
			if key, ok := doc.FindAncestor(node, group.ContextAncestor); ok {
				systemContext = key
			}
		}

		for _, field := range group.Fields {
			if !field.Enabled || e.catalog.Suppressed(deviceType, field.Name) {
				continue
			}

			actual, ok := doc.ReadFieldText(node, field.Name)
			switch {
			case !ok:
				found = append(found, domain.Discrepancy{
					SystemContext: systemContext,
					GroupName:     group.Name,
					FieldName:     field.Name,
					Issue:         domain.SettingMissing,
					Expected:      field.Expected,
					Actual:        domain.NotApplicable,
				})
			case actual != field.Expected:
				found = append(found, domain.Discrepancy{
					SystemContext: systemContext,
					GroupName:     group.Name,
					FieldName:     field.Name,
					Issue:         domain.IncorrectValue,
					Expected:      field.Expected,
					Actual:        actual,
				})
			}
		}
	}
	return found
}

// EvaluateAll runs every catalog group against doc in catalog order.
func (e *RuleEvaluator) EvaluateAll(doc *document.Document, deviceType string) []domain.Discrepancy {
	var found []domain.Discrepancy
	for _, group := range e.catalog.Groups {
		found = append(found, e.Evaluate(doc, group, deviceType)...)
	}
	return found
}
