package storage

import (
	"errors"
	"fmt"

	"github.com/habitlog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValue 定义核心状态所依赖的持久化契约：按键读写字符串快照。
type KeyValue interface {
	// Load 返回指定槽位的内容，第二个返回值表示槽位是否存在。
	Load(key string) (string, bool, error)
	// Save 整体覆写指定槽位。
	Save(key, value string) error
}

// SnapshotStore 基于 snapshots 表实现 KeyValue 契约。
type SnapshotStore struct {
	db *gorm.DB
}

// NewSnapshotStore 构造 SnapshotStore。
func NewSnapshotStore(gdb *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: gdb}
}

// Load 读取指定槽位，未写入过的槽位返回 found=false。
func (s *SnapshotStore) Load(key string) (string, bool, error) {
	var record db.Snapshot
	if err := s.db.Where("key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return record.Value, true, nil
}

// Save 覆写指定槽位，不存在时创建。
func (s *SnapshotStore) Save(key, value string) error {
	record := db.Snapshot{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&record).Error; err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
