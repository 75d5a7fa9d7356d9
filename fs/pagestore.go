package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/novelsrc"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements novelsrc.ChapterStore at compile time.
var _ novelsrc.ChapterStore = (*FileStore)(nil)

// FileStore writes chapters as markdown files with atomic update semantics.
// Chapters are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
	now     func() time.Time
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// ChapterFileName returns the file name of a chapter: its zero-padded
// position followed by a slug of its name, so files sort in reading order.
func ChapterFileName(item novelsrc.ChapterItem) string {
	return fmt.Sprintf("%04d-%s.md", item.Position, slug(item.Name))
}

// Save writes one chapter to the temporary directory.
func (s *FileStore) Save(ctx context.Context, item novelsrc.ChapterItem, content string) error {
	if item.Position < 1 {
		return novelsrc.Errorf(novelsrc.EINVALID, "chapter position must be positive")
	}

	dir := s.tempDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	formatted, err := FormatChapter(item, content, s.now())
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ChapterFileName(item)), []byte(formatted), 0644)
}

type frontmatter struct {
	Title      string `yaml:"title"`
	Source     string `yaml:"source"`
	Position   int    `yaml:"position"`
	Released   string `yaml:"released,omitempty"`
	Downloaded string `yaml:"downloaded"`
}

// FormatChapter formats chapter content with YAML frontmatter.
func FormatChapter(item novelsrc.ChapterItem, content string, downloaded time.Time) (string, error) {
	fm := frontmatter{
		Title:      item.Name,
		Source:     item.URL,
		Position:   item.Position,
		Downloaded: downloaded.Format("2006-01-02"),
	}
	if item.ReleasedAt != nil {
		fm.Released = item.ReleasedAt.Format("2006-01-02")
	}

	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Commit replaces the output directory with the staged chapters.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the staged chapters.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

const maxSlugLen = 60

// slug lowercases s and joins its letter and digit runs with hyphens.
func slug(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
			continue
		}
		hyphen = true
	}

	out := b.String()
	if len(out) > maxSlugLen {
		cut := maxSlugLen
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = strings.TrimRight(out[:cut], "-")
	}
	if out == "" {
		return "chapter"
	}
	return out
}
