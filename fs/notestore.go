// Package fs exports lookups as Markdown notes on the local filesystem.
package fs

import (
	"bytes"
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/dictscrape"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements dictscrape.NoteStore at compile time.
var _ dictscrape.NoteStore = (*FileStore)(nil)

// FileStore implements dictscrape.NoteStore. Notes are saved to a temporary
// directory, then moved into the export directory on Commit. Files already
// in the export directory are kept unless a note with the same path replaces
// them.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore exporting to dir.
// Files are saved to dir.tmp and merged into dir on Commit.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: filepath.Clean(dir)}
}

func (s *FileStore) tempDir() string {
	return s.dir + ".tmp"
}

// Save writes the note to <dir>.tmp/<source>/<slug>.md.
func (s *FileStore) Save(ctx context.Context, note *dictscrape.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), NotePath(note))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatNote(note)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0644)
}

// Commit moves everything saved so far into the export directory, then
// removes the temp directory. Committing with nothing saved is a no-op.
func (s *FileStore) Commit() error {
	tmp := s.tempDir()
	err := filepath.WalkDir(tmp, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(tmp, path)
		if err != nil {
			return err
		}
		target := filepath.Join(s.dir, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return os.Rename(path, target)
	})
	if errors.Is(err, iofs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.RemoveAll(tmp)
}

// Abort discards everything saved so far.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// frontmatter is the YAML header of an exported note.
type frontmatter struct {
	Source    string `yaml:"source"`
	Query     string `yaml:"query"`
	SourceURL string `yaml:"source_url,omitempty"`
}

// FormatNote renders a note as Markdown with YAML frontmatter.
func FormatNote(note *dictscrape.Note) ([]byte, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:    note.Source,
		Query:     dictscrape.NormalizeQuery(note.Query),
		SourceURL: note.SourceURL,
	})
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(note.Markdown)
	if !strings.HasSuffix(note.Markdown, "\n") {
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}

// NotePath returns the note's path relative to the export directory.
// Example: source "hjdict", query "ice cream" → hjdict/ice-cream.md
func NotePath(note *dictscrape.Note) string {
	return filepath.Join(slug(note.Source), slug(note.Query)+".md")
}

// slug makes s usable as a single path element. Letters of any script are
// kept; whitespace becomes '-' and path or shell-hostile characters '_'.
func slug(s string) string {
	s = strings.Join(strings.Fields(s), "-")
	s = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, s)
	if s == "" || strings.Trim(s, ".") == "" {
		s = "_" + s
	}
	return s
}
