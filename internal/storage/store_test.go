package storage

import (
	"testing"

	"github.com/habitlog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStoreTestDB(t *testing.T) (*SnapshotStore, func()) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Snapshot{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewSnapshotStore(gdb), func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSnapshotStoreMissingKey(t *testing.T) {
	store, cleanup := setupStoreTestDB(t)
	defer cleanup()

	value, found, err := store.Load(db.SnapshotKeyHabits)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if found {
		t.Fatal("expected missing key to report found=false")
	}
	if value != "" {
		t.Fatalf("expected empty value for missing key, got %q", value)
	}
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store, cleanup := setupStoreTestDB(t)
	defer cleanup()

	if err := store.Save(db.SnapshotKeyGroups, `["Health","Uncategorized"]`); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	value, found, err := store.Load(db.SnapshotKeyGroups)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !found {
		t.Fatal("expected key to exist after save")
	}
	if value != `["Health","Uncategorized"]` {
		t.Fatalf("unexpected value: %s", value)
	}
}

func TestSnapshotStoreOverwrite(t *testing.T) {
	store, cleanup := setupStoreTestDB(t)
	defer cleanup()

	if err := store.Save(db.SnapshotKeyEntries, `{}`); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	if err := store.Save(db.SnapshotKeyEntries, `{"2024-05-01":{}}`); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	value, found, err := store.Load(db.SnapshotKeyEntries)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !found {
		t.Fatal("expected key to exist")
	}
	if value != `{"2024-05-01":{}}` {
		t.Fatalf("expected overwritten value, got %s", value)
	}

	var count int64
	// 覆写同一槽位不应产生第二行
	store.db.Model(&db.Snapshot{}).Where("key = ?", db.SnapshotKeyEntries).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 row for slot, got %d", count)
	}
}
