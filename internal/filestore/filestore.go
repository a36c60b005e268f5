// Package filestore is the on-disk sink. Records are pretty-printed JSON
// files laid out as {dataDir}/{sport}/{kind}/{id}.json so operators can
// inspect the live state with nothing but a shell.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store writes and reads JSON records under a base directory.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. The directory tree is created
// lazily on first write.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// BaseDir reports the root of the file tree.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Path returns the file a record lives at.
func (s *Store) Path(sport, kind, id string) string {
	return filepath.Join(s.baseDir, sport, kind, id+".json")
}

// Write persists v as indented JSON. The write goes to a temporary file in
// the target directory and is renamed into place, so readers never observe
// a partially written record.
func (s *Store) Write(sport, kind, id string, v any) error {
	target := s.Path(sport, kind, id)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filestore: create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: marshal %s/%s/%s: %w", sport, kind, id, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, "."+id+"-*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("filestore: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore: rename into %s: %w", target, err)
	}
	return nil
}

// Read decodes the record at sport/kind/id into v. Missing records surface
// as os.ErrNotExist via the wrapped error.
func (s *Store) Read(sport, kind, id string, v any) error {
	data, err := os.ReadFile(s.Path(sport, kind, id))
	if err != nil {
		return fmt.Errorf("filestore: read %s/%s/%s: %w", sport, kind, id, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("filestore: decode %s/%s/%s: %w", sport, kind, id, err)
	}
	return nil
}

// List returns the record ids present under sport/kind. A missing
// directory is an empty listing, not an error.
func (s *Store) List(sport, kind string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, sport, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("filestore: list %s/%s: %w", sport, kind, err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}
