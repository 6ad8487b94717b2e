package sweep

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/g1nlyf/bikewerk/internal/decision"
	"github.com/g1nlyf/bikewerk/internal/model"
	"github.com/g1nlyf/bikewerk/internal/testutil"
)

func sampleReport() *Report {
	return &Report{
		ID:         uuid.New(),
		StartedAt:  time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 6, 1, 8, 0, 5, 0, time.UTC),
		Total:      1,
		Valued:     1,
		Hits:       1,
		Results: []Result{
			{
				ID:      uuid.New(),
				Listing: model.ListingCandidate{Brand: "Canyon", Model: "Spectral", Price: 1500},
				Sniper:  decision.SniperDecision{IsHit: true, Priority: decision.PriorityHigh},
				Hotness: 12000,
				Band:    decision.BandWellBelowMarket,
			},
		},
	}
}

func TestSnapshotSaveAndLoad(t *testing.T) {
	t.Setenv(testutil.TestSnapshotDir, t.TempDir())

	store, err := NewSnapshotStore(testutil.GetTestSnapshotDir())
	if err != nil {
		t.Fatalf("NewSnapshotStore: %v", err)
	}

	report := sampleReport()
	path, err := store.Save(report)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.ID != report.ID {
		t.Errorf("ID = %s, want %s", loaded.ID, report.ID)
	}
	if loaded.Hits != 1 || loaded.Total != 1 {
		t.Errorf("counters lost: %+v", loaded)
	}
	if len(loaded.Results) != 1 {
		t.Fatalf("Results = %d, want 1", len(loaded.Results))
	}
	if loaded.Results[0].Listing.Model != "Spectral" {
		t.Errorf("listing model = %q", loaded.Results[0].Listing.Model)
	}
	if loaded.Results[0].Hotness != 12000 {
		t.Errorf("hotness = %d, want 12000", loaded.Results[0].Hotness)
	}
}

func TestSnapshotLoadLatest(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSnapshotStore: %v", err)
	}

	// No sweeps yet.
	loaded, err := store.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil before any save, got %+v", loaded)
	}

	first := sampleReport()
	if _, err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := sampleReport()
	if _, err := store.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err = store.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if loaded.ID != second.ID {
		t.Errorf("latest ID = %s, want the second report %s", loaded.ID, second.ID)
	}
}

func TestSnapshotPrune(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSnapshotStore(dir)
	if err != nil {
		t.Fatalf("NewSnapshotStore: %v", err)
	}

	path, err := store.Save(sampleReport())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Age the timestamped snapshot beyond the retention window.
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if err := store.Prune(24 * time.Hour); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("aged snapshot still present: %v", err)
	}
	// The latest pointer survives pruning.
	if _, err := os.Stat(filepath.Join(dir, latestFile)); err != nil {
		t.Errorf("latest pointer removed: %v", err)
	}
}
