package filestore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"live-markets-service/internal/timeutil"
)

// EvictBefore removes every record whose last modification falls on an
// earlier calendar day than now. Files written today survive untouched;
// the boundary is the local date, not a rolling 24h window.
func (s *Store) EvictBefore(now time.Time) (int, error) {
	removed := 0
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !timeutil.StartOfDay(info.ModTime()).Before(timeutil.StartOfDay(now)) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return removed, nil
		}
		return removed, fmt.Errorf("filestore: evict under %s: %w", s.baseDir, err)
	}
	return removed, nil
}
