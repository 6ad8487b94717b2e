package sweep

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/andybalholm/brotli"
)

const latestFile = "latest.json.br"

// SnapshotStore persists sweep reports as brotli-compressed JSON so a day of
// sweeps stays cheap to keep around.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates the snapshot directory if needed.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &SnapshotStore{dir: dir}, nil
}

// Save writes the report under a timestamped name and refreshes the latest
// pointer. Returns the snapshot path.
func (s *SnapshotStore) Save(report *Report) (string, error) {
	name := fmt.Sprintf("sweep-%s-%s.json.br",
		report.StartedAt.UTC().Format("20060102T150405Z"), report.ID)
	path := filepath.Join(s.dir, name)

	if err := s.write(path, report); err != nil {
		return "", err
	}
	if err := s.write(filepath.Join(s.dir, latestFile), report); err != nil {
		return "", err
	}
	return path, nil
}

// LoadLatest reads the most recent report, or nil when no sweep ran yet.
func (s *SnapshotStore) LoadLatest() (*Report, error) {
	path := filepath.Join(s.dir, latestFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return s.Load(path)
}

// Load reads a snapshot from disk.
func (s *SnapshotStore) Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(brotli.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &report, nil
}

// Prune removes snapshots older than the retention window.
func (s *SnapshotStore) Prune(retention time.Duration) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read snapshot dir: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	for _, e := range entries {
		if e.IsDir() || e.Name() == latestFile {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return fmt.Errorf("remove snapshot %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

func (s *SnapshotStore) write(path string, report *Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	w := brotli.NewWriterLevel(f, brotli.DefaultCompression)
	if _, err := w.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("compress snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return f.Close()
}
