package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/lexcrawl"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a document URL without a CELEX number to a relative
// file path.
// Example: https://eur-lex.europa.eu/eli/reg/2016/679/oj → eli/reg/2016/679/oj.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", lexcrawl.Errorf(lexcrawl.EINVALID, "invalid URL %q", rawURL)
	}

	path := u.Path
	if path == "" || path == "/" {
		return "index.md", nil
	}
	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}
	return path + ".md", nil
}

// DocumentPath returns the relative path a document is exported to:
// <CELEX>.md, or a path derived from its URL when the CELEX is unknown.
func DocumentPath(doc *lexcrawl.Document) (string, error) {
	if doc.CELEX != "" {
		return doc.CELEX + ".md", nil
	}
	return URLToPath(doc.SourceURL)
}

type frontmatter struct {
	CELEX        string `yaml:"celex,omitempty"`
	Title        string `yaml:"title,omitempty"`
	Source       string `yaml:"source"`
	ELI          string `yaml:"eli,omitempty"`
	DocumentType string `yaml:"document_type,omitempty"`
	Crawled      string `yaml:"crawled"`
}

// FormatDocument formats a document as Markdown with YAML frontmatter.
// The body is content_markdown when present, otherwise the text blocks
// separated by blank lines.
func FormatDocument(doc *lexcrawl.Document) (string, error) {
	fm, err := yaml.Marshal(frontmatter{
		CELEX:        doc.CELEX,
		Title:        doc.Title,
		Source:       doc.SourceURL,
		ELI:          doc.Fields.String(lexcrawl.FieldELI),
		DocumentType: doc.Fields.String(lexcrawl.FieldDocumentType),
		Crawled:      doc.FetchedAt.Format(time.DateOnly),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(body(doc.Fields))
	return b.String(), nil
}

func body(fields lexcrawl.Fragment) string {
	if md := fields.String(lexcrawl.FieldContentMarkdown); md != "" {
		return md
	}
	return strings.Join(textBlocks(fields[lexcrawl.FieldTextBlocks]), "\n\n")
}

// textBlocks accepts blocks as extracted ([]string) or as decoded from
// stored JSON ([]any).
func textBlocks(v any) []string {
	switch blocks := v.(type) {
	case []string:
		return blocks
	case []any:
		out := make([]string, 0, len(blocks))
		for _, b := range blocks {
			if s, ok := b.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Ensure MarkdownStore implements lexcrawl.DocumentWriter at compile time.
var _ lexcrawl.DocumentWriter = (*MarkdownStore)(nil)

// MarkdownStore exports documents as Markdown files with atomic update
// semantics. Files are saved to a temporary directory, then moved into
// place on Commit.
type MarkdownStore struct {
	baseDir string
	name    string
}

// NewMarkdownStore creates a new MarkdownStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewMarkdownStore(baseDir, name string) *MarkdownStore {
	return &MarkdownStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *MarkdownStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *MarkdownStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// CreateDocument writes doc to the temporary directory.
func (s *MarkdownStore) CreateDocument(ctx context.Context, doc *lexcrawl.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := DocumentPath(doc)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with the temporary one.
func (s *MarkdownStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the temporary directory.
func (s *MarkdownStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
