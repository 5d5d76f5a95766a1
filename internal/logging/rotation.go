package logging

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type logFile struct {
	path    string
	modTime time.Time
}

// rotate keeps at most keep tmux-alert_*.log files in dir, deleting the
// oldest first, and returns how many it removed. Other files are left alone.
func rotate(dir string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var files []logFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || filepath.Ext(name) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, name), modTime: info.ModTime()})
	}
	if len(files) <= keep {
		return 0, nil
	}

	// Names embed a timestamp, so they break ties between equal mtimes.
	sort.Slice(files, func(i, j int) bool {
		if !files[i].modTime.Equal(files[j].modTime) {
			return files[i].modTime.Before(files[j].modTime)
		}
		return files[i].path < files[j].path
	})

	var errs []error
	removed := 0
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}
