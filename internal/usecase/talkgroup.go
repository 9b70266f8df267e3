package usecase

import (
	"log/slog"
	"strings"

	"codeplug-audit/internal/document"
	"codeplug-audit/internal/domain"
)

const (
	talkgroupGroupName      = "Talkgroup Consistency"
	expectedDeclaredAlias   = "a declared alias"
	expectedAliasMatchesKey = "alias text equal to the reference key"
)

// TalkgroupChecker cross-checks talkgroup usages against the document's
// talkgroup table. A talkgroup's alias text is expected to mirror its
// reference key exactly.
type TalkgroupChecker struct {
	policy domain.TalkgroupPolicy
	logger *slog.Logger
}

// NewTalkgroupChecker creates a checker for the given table layout.
func NewTalkgroupChecker(policy domain.TalkgroupPolicy, logger *slog.Logger) *TalkgroupChecker {
	return &TalkgroupChecker{policy: policy, logger: logger}
}

// Definitions maps every declared talkgroup's reference key to its trimmed
// alias text. Entries without a key or with empty alias text are skipped.
func (c *TalkgroupChecker) Definitions(doc *document.Document) map[string]string {
	defs := make(map[string]string)
	if c.policy.Definitions == nil {
		return defs
	}
	entries, err := doc.FindAll(c.policy.Definitions, nil)
	if err != nil {
		c.logger.Warn("talkgroup table locator failed", "error", err)
		return defs
	}
	for _, entry := range entries {
		key, ok := doc.ReferenceKey(entry)
		if !ok {
			continue
		}
		alias, ok := doc.ReadFieldText(entry, c.policy.AliasField)
		alias = strings.TrimSpace(alias)
		if !ok || alias == "" {
			continue
		}
		defs[key] = alias
	}
	return defs
}

// Validate reports every talkgroup usage that is undeclared or whose
// declaration's alias differs from the identifier used.
func (c *TalkgroupChecker) Validate(doc *document.Document) []domain.Discrepancy {
	if c.policy.Definitions == nil || len(c.policy.UsageFields) == 0 {
		return nil
	}
	defs := c.Definitions(doc)

	var found []domain.Discrepancy
	for _, usageField := range c.policy.UsageFields {
		for _, field := range doc.Fields(usageField) {
			used := strings.TrimSpace(doc.Text(field))
			if used == "" || used == c.policy.DefaultIdentifier {
				continue
			}

			systemContext := domain.NotApplicable
			if key, ok := doc.NearestReferenceKey(field); ok {
				systemContext = key
			}

			alias, declared := defs[used]
			switch {
			case !declared:
				found = append(found, domain.Discrepancy{
					SystemContext: systemContext,
					GroupName:     talkgroupGroupName,
					FieldName:     usageField,
					Issue:         domain.UndeclaredIdentifier,
					Expected:      expectedDeclaredAlias,
					Actual:        used,
				})
			case alias != used:
				found = append(found, domain.Discrepancy{
					SystemContext: systemContext,
					GroupName:     talkgroupGroupName,
					FieldName:     usageField,
					Issue:         domain.InconsistentDefinition,
					Expected:      expectedAliasMatchesKey,
					Actual:        alias,
				})
			}
		}
	}
	return found
}
