package tracker

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultGroup 是保留分组，未指定分组的习惯都归于此处，且不允许删除。
const DefaultGroup = "Uncategorized"

// Habit 定义了习惯模型
// Order 表示习惯在所属分组内的展示顺序，仅保证组内相对有序
// Archived 的习惯默认视图中隐藏，但保留全部历史记录
type Habit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Group    string `json:"group"`
	Order    int    `json:"order"`
	Archived bool   `json:"archived"`
}

// Entry 记录某习惯在某天的打分与备注。
// 未写入过的 (日期, 习惯) 组合等价于 {score: 0, note: ""}。
type Entry struct {
	Score int    `json:"score"`
	Note  string `json:"note"`
}

// EntryMap 以日期为一级键、习惯 ID 为二级键组织打分记录。
// 日期使用 YYYY-MM-DD 格式。
type EntryMap map[string]map[string]Entry

const (
	// ScoreMin 是单日打分的下限。
	ScoreMin = -3
	// ScoreMax 是单日打分的上限。
	ScoreMax = 3
)

// ResolveGroup 将空白分组名归一化为保留分组。
func ResolveGroup(group string) string {
	trimmed := strings.TrimSpace(group)
	if trimmed == "" {
		return DefaultGroup
	}
	return trimmed
}

func newHabitID() string {
	return uuid.NewString()
}

// defaultHabits 返回首次启动时的内置示例数据。
func defaultHabits() []Habit {
	return []Habit{
		{ID: "h1", Name: "Exercise", Group: "Health", Order: 0},
		{ID: "h2", Name: "Read", Group: "Personal Growth", Order: 1},
		{ID: "h3", Name: "Meditate", Group: "Wellbeing", Order: 2},
		{ID: "h4", Name: "Drink Water", Group: "Health", Order: 3},
		{ID: "h5", Name: "No Sugar", Group: "Health", Order: 4, Archived: true},
	}
}

func defaultGroups() []string {
	return []string{"Health", "Personal Growth", "Wellbeing", "Work", "Chores", DefaultGroup}
}

func clampScore(score int) int {
	if score < ScoreMin {
		return ScoreMin
	}
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}
