package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/quillkey/internal/log"
)

const snapshotVersion = 1

// ErrUnsupportedVersion is returned for snapshots written by a newer build.
var ErrUnsupportedVersion = errors.New("unsupported history snapshot version")

type snapshot struct {
	Version   int     `json:"version"`
	MaxSize   int     `json:"max_size"`
	Entries   []Entry `json:"entries"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// Load reads a journal snapshot. A missing file or empty path yields an
// empty journal of fallbackMax entries.
func Load(path string, fallbackMax int) (*Journal, error) {
	j := NewJournal(fallbackMax)
	if path == "" {
		return j, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return j, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	if snap.Version != 0 && snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}

	if fallbackMax <= 0 && snap.MaxSize > 0 {
		j = NewJournal(snap.MaxSize)
	}
	for _, e := range snap.Entries {
		j.Add(e)
	}
	log.Debug(log.CatConfig, "Loaded history", "path", path, "entries", j.Len())
	return j, nil
}

// Save writes j to path through a temp file and rename.
func Save(path string, j *Journal) error {
	if j == nil {
		return errors.New("history journal is nil")
	}
	if path == "" {
		return errors.New("history path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	j.mu.RLock()
	maxSize := j.maxSize
	j.mu.RUnlock()

	data, err := json.Marshal(snapshot{
		Version:   snapshotVersion,
		MaxSize:   maxSize,
		Entries:   j.Entries(),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
