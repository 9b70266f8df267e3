package gateway

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"codeplug-audit/internal/document"
)

// DefaultPattern matches codeplug exports in the top level of a directory.
const DefaultPattern = "*.xml"

// XMLDocumentRepository implements the DocumentRepository interface for XML
// files on disk.
type XMLDocumentRepository struct {
	pattern string
}

// NewXMLDocumentRepository creates a repository matching pattern, a doublestar
// glob relative to the input directory.
func NewXMLDocumentRepository(pattern string) (*XMLDocumentRepository, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern %q", pattern)
	}
	return &XMLDocumentRepository{pattern: pattern}, nil
}

// Discover returns the regular files under dir matching the pattern, sorted.
func (r *XMLDocumentRepository) Discover(ctx context.Context, dir string) ([]string, error) {
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, r.pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", dir, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", m, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}

// Load opens and parses the document at path.
func (r *XMLDocumentRepository) Load(ctx context.Context, path string) (*document.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer file.Close()

	doc, err := document.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}
