package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeplug-audit/internal/domain"
	"codeplug-audit/internal/usecase"
)

func talkgroupPolicy() domain.TalkgroupPolicy {
	return domain.TalkgroupPolicy{
		Definitions: domain.Sequence{
			domain.ElementMatch{Tag: "Recset", Attr: "Name", Value: "Trunking Talkgroup"},
			domain.ElementMatch{Tag: "EmbeddedNode"},
		},
		AliasField:        "Talkgroup Alias",
		UsageFields:       []string{"Trunking Talkgroup"},
		DefaultIdentifier: "None",
	}
}

func TestTalkgroupChecker_Definitions(t *testing.T) {
	doc := mustParse(t, codeplug)
	c := usecase.NewTalkgroupChecker(talkgroupPolicy(), discardLogger())

	assert.Equal(t, map[string]string{
		"IO 6": "IO 6",
		"TG 5": "Special Ops",
	}, c.Definitions(doc))
}

func TestTalkgroupChecker_Validate(t *testing.T) {
	doc := mustParse(t, codeplug)
	c := usecase.NewTalkgroupChecker(talkgroupPolicy(), discardLogger())

	got := c.Validate(doc)
	assert.Equal(t, []domain.Discrepancy{
		{
			SystemContext: "7-TAC 5",
			GroupName:     "Talkgroup Consistency",
			FieldName:     "Trunking Talkgroup",
			Issue:         domain.InconsistentDefinition,
			Expected:      "alias text equal to the reference key",
			Actual:        "Special Ops",
		},
		{
			SystemContext: "8-TAC 9",
			GroupName:     "Talkgroup Consistency",
			FieldName:     "Trunking Talkgroup",
			Issue:         domain.UndeclaredIdentifier,
			Expected:      "a declared alias",
			Actual:        "TG 9",
		},
	}, got)
}

func TestTalkgroupChecker_Cases(t *testing.T) {
	tests := []struct {
		name      string
		table     string
		usage     string
		wantIssue domain.IssueKind
		wantNone  bool
	}{
		{
			name:     "alias mirrors key",
			table:    `<EmbeddedNode ReferenceKey="TG 5"><Field Name="Talkgroup Alias">TG 5</Field></EmbeddedNode>`,
			usage:    "TG 5",
			wantNone: true,
		},
		{
			name:      "alias differs from key",
			table:     `<EmbeddedNode ReferenceKey="TG 5"><Field Name="Talkgroup Alias">Special Ops</Field></EmbeddedNode>`,
			usage:     "TG 5",
			wantIssue: domain.InconsistentDefinition,
		},
		{
			name:      "undeclared",
			table:     `<EmbeddedNode ReferenceKey="TG 5"><Field Name="Talkgroup Alias">TG 5</Field></EmbeddedNode>`,
			usage:     "TG 9",
			wantIssue: domain.UndeclaredIdentifier,
		},
		{
			name:     "default identifier is exempt",
			usage:    "None",
			wantNone: true,
		},
		{
			name:     "default identifier is exempt even when declared differently",
			table:    `<EmbeddedNode ReferenceKey="None"><Field Name="Talkgroup Alias">Nobody</Field></EmbeddedNode>`,
			usage:    "None",
			wantNone: true,
		},
		{
			name:      "alias equal but key differs",
			table:     `<EmbeddedNode ReferenceKey="TG 05"><Field Name="Talkgroup Alias">TG 5</Field></EmbeddedNode>`,
			usage:     "TG 5",
			wantIssue: domain.UndeclaredIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, `<Codeplug>
  <Recset Name="Trunking Talkgroup">`+tt.table+`</Recset>
  <Recset Name="Zone Channel Assignment">
    <Node ReferenceKey="1-Z1">
      <EmbeddedNode ReferenceKey="1-CH"><Field Name="Trunking Talkgroup">`+tt.usage+`</Field></EmbeddedNode>
    </Node>
  </Recset>
</Codeplug>`)
			c := usecase.NewTalkgroupChecker(talkgroupPolicy(), discardLogger())

			got := c.Validate(doc)
			if tt.wantNone {
				assert.Empty(t, got)
				return
			}
			if assert.Len(t, got, 1) {
				assert.Equal(t, tt.wantIssue, got[0].Issue)
				assert.Equal(t, "1-CH", got[0].SystemContext)
			}
		})
	}
}

func TestTalkgroupChecker_NoPolicy(t *testing.T) {
	doc := mustParse(t, codeplug)
	c := usecase.NewTalkgroupChecker(domain.TalkgroupPolicy{}, discardLogger())
	assert.Empty(t, c.Validate(doc))
}
