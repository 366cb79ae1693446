package tracker

import (
	"encoding/json"
	"errors"
	"sort"
)

// BackupVersion 是当前备份文档的版本号。
// 导入时不校验版本，依靠字段级迁移兼容旧文档。
const BackupVersion = "2.0"

// ErrInvalidBackup 在备份文档缺失 habits/entries/groups 任一顶层集合时返回。
var ErrInvalidBackup = errors.New("invalid backup format: habits, entries and groups are required")

// Document 是备份文档的内存形态，也是导出文件的 JSON 形状。
type Document struct {
	Habits  []Habit  `json:"habits"`
	Entries EntryMap `json:"entries"`
	Groups  []string `json:"groups"`
	Version string   `json:"version"`
}

// habitDocument 兼容旧版本字段：Order 可能缺失，历史的 dailyGoal/unit
// 字段在解码时直接丢弃。
type habitDocument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Group    string `json:"group"`
	Order    *int   `json:"order"`
	Archived bool   `json:"archived"`
}

// entryDocument 兼容旧版本字段：历史的 value 字段在解码时直接丢弃。
type entryDocument struct {
	Score int    `json:"score"`
	Note  string `json:"note"`
}

type rawDocument struct {
	Habits  *[]habitDocument                     `json:"habits"`
	Entries *map[string]map[string]entryDocument `json:"entries"`
	Groups  *[]string                            `json:"groups"`
	Version string                               `json:"version"`
}

// Serialize 将三个集合组装为带版本号的备份文档。
// nil 集合归一化为空集合，导出的文档序列化后必须始终能被 Decode 接受。
func Serialize(habits []Habit, entries EntryMap, groups []string) Document {
	if habits == nil {
		habits = []Habit{}
	}
	if entries == nil {
		entries = EntryMap{}
	}
	if groups == nil {
		groups = []string{}
	}
	return Document{
		Habits:  habits,
		Entries: entries,
		Groups:  groups,
		Version: BackupVersion,
	}
}

// Decode 解析并迁移备份文档。三个顶层集合缺一不可（空集合合法，缺失/null 不合法），
// 解析失败或格式不符时返回错误，不产生任何部分结果。
func Decode(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrInvalidBackup
	}

	if raw.Habits == nil || raw.Entries == nil || raw.Groups == nil {
		return nil, ErrInvalidBackup
	}

	doc := Document{
		Habits:  normalizeHabits(*raw.Habits),
		Entries: normalizeEntries(*raw.Entries),
		Groups:  normalizeGroups(*raw.Groups),
		Version: raw.Version,
	}
	return &doc, nil
}

// normalizeHabits 为旧文档补齐默认值：空分组归入保留分组，
// Order 缺失时取位置下标，Archived 缺失时为 false。
func normalizeHabits(docs []habitDocument) []Habit {
	habits := make([]Habit, 0, len(docs))
	for index, doc := range docs {
		order := index
		if doc.Order != nil {
			order = *doc.Order
		}
		habits = append(habits, Habit{
			ID:       doc.ID,
			Name:     doc.Name,
			Group:    ResolveGroup(doc.Group),
			Order:    order,
			Archived: doc.Archived,
		})
	}
	return habits
}

func normalizeEntries(docs map[string]map[string]entryDocument) EntryMap {
	entries := make(EntryMap, len(docs))
	for date, byHabit := range docs {
		day := make(map[string]Entry, len(byHabit))
		for habitID, doc := range byHabit {
			day[habitID] = Entry{Score: doc.Score, Note: doc.Note}
		}
		entries[date] = day
	}
	return entries
}

// normalizeGroups 保证保留分组一定存在；仅在补入时重新排序，
// 其余情况保持文档中的顺序。
func normalizeGroups(groups []string) []string {
	copied := append([]string(nil), groups...)
	for _, group := range copied {
		if group == DefaultGroup {
			return copied
		}
	}
	copied = append(copied, DefaultGroup)
	sort.Strings(copied)
	return copied
}

// Export 以当前状态生成备份文档。
func (t *Tracker) Export() Document {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Serialize(t.copyHabits(), t.copyEntries(), append([]string(nil), t.groups...))
}

// Import 用备份文档整体替换当前状态并写回全部槽位。
// 覆盖确认属于调用方边界；文档不合法时应在 Decode 阶段整体拒绝，
// 这里不存在部分应用的路径。
func (t *Tracker) Import(doc *Document) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prevHabits, prevEntries, prevGroups := t.habits, t.entries, t.groups

	t.habits = append([]Habit(nil), doc.Habits...)
	t.entries = make(EntryMap, len(doc.Entries))
	for date, byHabit := range doc.Entries {
		day := make(map[string]Entry, len(byHabit))
		for id, entry := range byHabit {
			day[id] = entry
		}
		t.entries[date] = day
	}
	t.groups = append([]string(nil), doc.Groups...)

	restore := func() {
		t.habits, t.entries, t.groups = prevHabits, prevEntries, prevGroups
	}
	if err := t.saveHabits(); err != nil {
		restore()
		return err
	}
	if err := t.saveEntries(); err != nil {
		restore()
		return err
	}
	if err := t.saveGroups(); err != nil {
		restore()
		return err
	}
	return nil
}
