package main

import (
	"testing"

	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/storage"
	"github.com/habitlog/internal/tracker"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTracker(t *testing.T) (*tracker.Tracker, func()) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Snapshot{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	tr, err := tracker.Load(storage.NewSnapshotStore(gdb))
	if err != nil {
		t.Fatalf("failed to load tracker state: %v", err)
	}
	return tr, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSeedEntriesFillsWindowWithinRange(t *testing.T) {
	tr, cleanup := setupSeedTracker(t)
	defer cleanup()

	count, err := seedEntries(tr)
	if err != nil {
		t.Fatalf("seedEntries returned error: %v", err)
	}
	if count == 0 {
		t.Fatal("expected some entries to be generated")
	}

	for date, day := range tr.Entries() {
		for habitID, entry := range day {
			if entry.Score < tracker.ScoreMin || entry.Score > tracker.ScoreMax {
				t.Fatalf("score out of range for %s/%s: %d", date, habitID, entry.Score)
			}
		}
	}
}

func TestSeedEntriesSkipsExistingData(t *testing.T) {
	tr, cleanup := setupSeedTracker(t)
	defer cleanup()

	score := 1
	if err := tr.UpsertEntry("2024-05-01", "h1", &score, nil); err != nil {
		t.Fatalf("UpsertEntry returned error: %v", err)
	}

	count, err := seedEntries(tr)
	if err != nil {
		t.Fatalf("seedEntries returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected existing data to be left alone, wrote %d entries", count)
	}
}
