package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/madara"
)

// Ensure FileStore implements madara.EntryStore at compile time.
var _ madara.EntryStore = (*FileStore)(nil)

// FileStore implements madara.EntryStore with atomic update semantics.
// Entries are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the entry as site/content.json and site/content.md.
func (s *FileStore) Save(ctx context.Context, entry *madara.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	jsonPath, err := EntryPath(entry.SiteID, entry.ContentID, ".json")
	if err != nil {
		return err
	}
	mdPath, err := EntryPath(entry.SiteID, entry.ContentID, ".md")
	if err != nil {
		return err
	}

	data, err := MarshalEntry(entry)
	if err != nil {
		return err
	}

	dir := filepath.Join(s.tempDir(), entry.SiteID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.tempDir(), jsonPath), data, 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), mdPath), []byte(FormatEntry(entry)), 0644)
}

func (s *FileStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// A commit with nothing saved still produces an empty export.
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
