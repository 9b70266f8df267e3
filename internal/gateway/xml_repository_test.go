package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeplug-audit/internal/document"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestXMLDocumentRepository_Discover(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"500BBB0002.xml":         "<Codeplug/>",
		"481AAA0001.xml":         "<Codeplug/>",
		"notes.txt":              "not a codeplug",
		"archive/682CCC0003.xml": "<Codeplug/>",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.xml"), 0o755))

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name: "default pattern",
			want: []string{
				filepath.Join(dir, "481AAA0001.xml"),
				filepath.Join(dir, "500BBB0002.xml"),
			},
		},
		{
			name:    "recursive pattern",
			pattern: "**/*.xml",
			want: []string{
				filepath.Join(dir, "481AAA0001.xml"),
				filepath.Join(dir, "500BBB0002.xml"),
				filepath.Join(dir, "archive", "682CCC0003.xml"),
			},
		},
		{
			name:    "no match",
			pattern: "*.codeplug",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewXMLDocumentRepository(tt.pattern)
			require.NoError(t, err)

			got, err := repo.Discover(context.Background(), dir)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewXMLDocumentRepository_InvalidPattern(t *testing.T) {
	_, err := NewXMLDocumentRepository("[*.xml")
	assert.Error(t, err)
}

func TestXMLDocumentRepository_Load(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"good.xml":   `<Codeplug><Recset Name="Radio Wide"/></Codeplug>`,
		"broken.xml": `<Codeplug><Recset Name="Radio Wide">`,
	})
	repo, err := NewXMLDocumentRepository("")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("well formed", func(t *testing.T) {
		doc, err := repo.Load(ctx, filepath.Join(dir, "good.xml"))
		require.NoError(t, err)
		assert.NotNil(t, doc.Root().SelectElement("Codeplug"))
	})

	t.Run("malformed", func(t *testing.T) {
		doc, err := repo.Load(ctx, filepath.Join(dir, "broken.xml"))
		assert.ErrorIs(t, err, document.ErrMalformed)
		assert.Nil(t, doc)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := repo.Load(ctx, filepath.Join(dir, "missing.xml"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, document.ErrMalformed)
	})
}
