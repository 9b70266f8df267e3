package usecase_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"codeplug-audit/internal/document"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustParse(t *testing.T, data string) *document.Document {
	t.Helper()
	doc, err := document.Parse(strings.NewReader(data))
	require.NoError(t, err)
	return doc
}

// codeplug is a trimmed export with two trunking systems, a conventional
// personality, an interop zone and the talkgroup table.
const codeplug = `<?xml version="1.0" encoding="utf-8"?>
<Codeplug>
  <Recset Name="Radio Wide">
    <Section Name="User Information">
      <Field Name="Radio Alias">GCPD UNIT 42</Field>
    </Section>
  </Recset>
  <Recset Name="Trunking System">
    <Node ReferenceKey="001 Gwinnett County">
      <Section Name="ASTRO 25">
        <Field Name="Phase 2 Voice Capable">True</Field>
        <Field Name="Unit ID">1234567</Field>
      </Section>
      <EmbeddedNode ReferenceKey="Channel ID 3">
        <Field Name="Identifier Enable">True</Field>
        <Field Name="Channel Type">TDMA</Field>
      </EmbeddedNode>
    </Node>
    <Node ReferenceKey="002 GISAC">
      <Section Name="ASTRO 25">
        <Field Name="Phase 2 Voice Capable">True</Field>
        <Field Name="Unit ID">not-a-number</Field>
      </Section>
      <EmbeddedNode ReferenceKey="Channel ID 3">
        <Field Name="Identifier Enable">true</Field>
        <Field Name="Channel Type">TDMA</Field>
      </EmbeddedNode>
    </Node>
  </Recset>
  <Recset Name="Trunking Talkgroup">
    <Node ReferenceKey="GW TG LIST">
      <EmbeddedNode ReferenceKey="IO 6">
        <Field Name="Talkgroup Alias">IO 6</Field>
      </EmbeddedNode>
      <EmbeddedNode ReferenceKey="TG 5">
        <Field Name="Talkgroup Alias">Special Ops</Field>
      </EmbeddedNode>
      <EmbeddedNode ReferenceKey="TG 7">
        <Field Name="Talkgroup Alias">   </Field>
      </EmbeddedNode>
    </Node>
  </Recset>
  <Recset Name="Zone Channel Assignment">
    <Node ReferenceKey="6-Z6-INTEROP">
      <EmbeddedNode ReferenceKey="6-GW IO 6">
        <Field Name="Channel Type">Trk</Field>
        <Field Name="Channel Name">GW IO 6</Field>
        <Field Name="Trunking Talkgroup">IO 6</Field>
        <Field Name="Active Channel">True</Field>
      </EmbeddedNode>
      <EmbeddedNode ReferenceKey="7-TAC 5">
        <Field Name="Trunking Talkgroup">TG 5</Field>
      </EmbeddedNode>
      <EmbeddedNode ReferenceKey="8-TAC 9">
        <Field Name="Trunking Talkgroup"> TG 9 </Field>
      </EmbeddedNode>
      <EmbeddedNode ReferenceKey="9-SPARE">
        <Field Name="Trunking Talkgroup">None</Field>
      </EmbeddedNode>
      <EmbeddedNode ReferenceKey="10-BLANK">
        <Field Name="Trunking Talkgroup"></Field>
      </EmbeddedNode>
    </Node>
  </Recset>
</Codeplug>`
