package tracker

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/storage"
)

// Tracker 是核心状态容器：持有习惯、打分记录与分组三个集合，
// 启动时从快照槽位加载，每次变更后同步写回对应槽位；
// 写回失败时回滚本次变更，内存不会领先于快照。
// 所有操作串行执行，派生视图在每次调用时由当前状态重新计算。
type Tracker struct {
	mu      sync.Mutex
	store   storage.KeyValue
	habits  []Habit
	entries EntryMap
	groups  []string
}

// Load 从持久化槽位恢复状态并构造 Tracker。
// 槽位缺失或内容损坏时回退到内置默认数据，损坏仅记录日志不对外报错。
func Load(store storage.KeyValue) (*Tracker, error) {
	t := &Tracker{
		store:   store,
		habits:  defaultHabits(),
		entries: EntryMap{},
		groups:  defaultGroups(),
	}

	if raw, found, err := store.Load(db.SnapshotKeyHabits); err != nil {
		return nil, fmt.Errorf("load habits snapshot: %w", err)
	} else if found {
		var docs []habitDocument
		if err := json.Unmarshal([]byte(raw), &docs); err != nil {
			log.Printf("tracker: corrupt habits snapshot, falling back to defaults: %v", err)
		} else {
			t.habits = normalizeHabits(docs)
		}
	}

	if raw, found, err := store.Load(db.SnapshotKeyEntries); err != nil {
		return nil, fmt.Errorf("load entries snapshot: %w", err)
	} else if found {
		var docs map[string]map[string]entryDocument
		if err := json.Unmarshal([]byte(raw), &docs); err != nil {
			log.Printf("tracker: corrupt entries snapshot, falling back to defaults: %v", err)
		} else {
			t.entries = normalizeEntries(docs)
		}
	}

	if raw, found, err := store.Load(db.SnapshotKeyGroups); err != nil {
		return nil, fmt.Errorf("load groups snapshot: %w", err)
	} else if found {
		var groups []string
		if err := json.Unmarshal([]byte(raw), &groups); err != nil {
			log.Printf("tracker: corrupt groups snapshot, falling back to defaults: %v", err)
		} else {
			t.groups = normalizeGroups(groups)
		}
	}

	return t, nil
}

// Habits 返回当前习惯集合的副本。
func (t *Tracker) Habits() []Habit {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyHabits()
}

// Entries 返回当前打分记录的深拷贝。
func (t *Tracker) Entries() EntryMap {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyEntries()
}

// Groups 返回当前分组列表的副本。
func (t *Tracker) Groups() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.groups...)
}

func (t *Tracker) copyHabits() []Habit {
	return append([]Habit(nil), t.habits...)
}

func (t *Tracker) copyEntries() EntryMap {
	copied := make(EntryMap, len(t.entries))
	for date, byHabit := range t.entries {
		day := make(map[string]Entry, len(byHabit))
		for id, entry := range byHabit {
			day[id] = entry
		}
		copied[date] = day
	}
	return copied
}

func (t *Tracker) findHabit(id string) int {
	for i := range t.habits {
		if t.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) saveHabits() error {
	data, err := json.Marshal(t.habits)
	if err != nil {
		return fmt.Errorf("marshal habits: %w", err)
	}
	if err := t.store.Save(db.SnapshotKeyHabits, string(data)); err != nil {
		return fmt.Errorf("save habits: %w", err)
	}
	return nil
}

func (t *Tracker) saveEntries() error {
	data, err := json.Marshal(t.entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	if err := t.store.Save(db.SnapshotKeyEntries, string(data)); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}

func (t *Tracker) saveGroups() error {
	data, err := json.Marshal(t.groups)
	if err != nil {
		return fmt.Errorf("marshal groups: %w", err)
	}
	if err := t.store.Save(db.SnapshotKeyGroups, string(data)); err != nil {
		return fmt.Errorf("save groups: %w", err)
	}
	return nil
}
