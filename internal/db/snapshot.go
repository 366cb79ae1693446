package db

import "gorm.io/gorm"

// Snapshot 以键值对形式存储各个集合的 JSON 快照。
// 每次状态变更后整体覆写对应槽位，读取时再反序列化为内存状态。
type Snapshot struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (Snapshot) TableName() string {
	return "snapshots"
}

const (
	// SnapshotKeyHabits 表示习惯集合的快照槽位。
	SnapshotKeyHabits = "habits"
	// SnapshotKeyEntries 表示打分记录集合的快照槽位。
	SnapshotKeyEntries = "habitEntries"
	// SnapshotKeyGroups 表示分组集合的快照槽位。
	SnapshotKeyGroups = "habitGroups"
)
