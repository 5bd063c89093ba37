package markdown

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
)

// Store implements storage.Drafts using Markdown files with YAML front-matter.
type Store struct {
	baseDir string // e.g. ~/.moodctl/drafts/
}

// New creates a draft store under dataDir/drafts.
func New(dataDir string) (*Store, error) {
	dir := filepath.Join(dataDir, "drafts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating drafts directory: %v", storage.ErrStorage, err)
	}
	return &Store{baseDir: dir}, nil
}

// Dir returns the directory drafts are written to.
func (s *Store) Dir() string { return s.baseDir }

func (s *Store) draftPath(date string) string {
	return filepath.Join(s.baseDir, date+".md")
}

func (s *Store) marshal(d storage.Draft) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %s\n", d.Date)
	fmt.Fprintf(&b, "saved_at: %s\n", d.SavedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "length: %d\n", utf8.RuneCountInString(d.Text))
	b.WriteString("---\n\n")
	b.WriteString(d.Text)
	return []byte(b.String())
}

type frontMatter struct {
	Date    string `yaml:"date"`
	SavedAt string `yaml:"saved_at"`
	Length  int    `yaml:"length"`
}

func (s *Store) unmarshal(data []byte) (storage.Draft, error) {
	var fm frontMatter
	content, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return storage.Draft{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}
	if _, err := entry.ParseDate(fm.Date); err != nil {
		return storage.Draft{}, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
	}
	savedAt, err := time.Parse(time.RFC3339, fm.SavedAt)
	if err != nil {
		return storage.Draft{}, fmt.Errorf("%w: parsing saved_at: %v", storage.ErrStorage, err)
	}

	return storage.Draft{
		Date:    fm.Date,
		Text:    strings.TrimSpace(string(content)),
		SavedAt: savedAt,
	}, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// Save writes the draft for d.Date, replacing any earlier one. A blank
// draft discards instead.
func (s *Store) Save(d storage.Draft) error {
	if _, err := entry.ParseDate(d.Date); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	if strings.TrimSpace(d.Text) == "" {
		return s.Discard(d.Date)
	}
	if utf8.RuneCountInString(d.Text) > entry.MaxDraftLength {
		return fmt.Errorf("%w: draft exceeds %d characters", storage.ErrValidation, entry.MaxDraftLength)
	}
	if d.SavedAt.IsZero() {
		d.SavedAt = time.Now()
	}
	return s.atomicWrite(s.draftPath(d.Date), s.marshal(d))
}

// Load returns the draft saved for date.
func (s *Store) Load(date string) (storage.Draft, error) {
	if _, err := entry.ParseDate(date); err != nil {
		return storage.Draft{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	data, err := os.ReadFile(s.draftPath(date))
	if errors.Is(err, fs.ErrNotExist) {
		return storage.Draft{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Draft{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	return s.unmarshal(data)
}

// Discard removes the draft for date. Discarding a missing draft is not an
// error.
func (s *Store) Discard(date string) error {
	if _, err := entry.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	err := os.Remove(s.draftPath(date))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: deleting file: %v", storage.ErrStorage, err)
	}
	return nil
}

// List returns every readable draft, newest date first. Unparseable files
// are skipped.
func (s *Store) List() ([]storage.Draft, error) {
	names, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading drafts directory: %v", storage.ErrStorage, err)
	}

	drafts := []storage.Draft{}
	for _, de := range names {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, de.Name()))
		if err != nil {
			continue
		}
		d, err := s.unmarshal(data)
		if err != nil {
			continue
		}
		drafts = append(drafts, d)
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].Date > drafts[j].Date
	})
	return drafts, nil
}
