package tracker

import (
	"errors"
	"sort"
	"strings"
)

// ErrHabitNameRequired 在习惯名称为空白时返回，校验发生在任何状态变更之前。
var ErrHabitNameRequired = errors.New("habit name is required")

// HabitUpdate 定义编辑习惯时可选的字段，nil 表示保持原值。
type HabitUpdate struct {
	Name  *string
	Group *string
}

// MoveDirection 表示组内移动的方向。
type MoveDirection string

const (
	// MoveUp 向组内更靠前的位置移动。
	MoveUp MoveDirection = "up"
	// MoveDown 向组内更靠后的位置移动。
	MoveDown MoveDirection = "down"
)

// AddHabit 新建习惯，Order 取当前同组习惯数量（含归档）。
func (t *Tracker) AddHabit(name, group string) (*Habit, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrHabitNameRequired
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	resolved := ResolveGroup(group)
	habit := Habit{
		ID:    newHabitID(),
		Name:  trimmed,
		Group: resolved,
		Order: t.countInGroup(resolved),
	}
	prev := t.habits
	t.habits = append(t.habits, habit)

	if err := t.saveHabits(); err != nil {
		t.habits = prev
		return nil, err
	}
	return &habit, nil
}

// EditHabit 更新习惯的名称或分组，未知 ID 静默忽略。
// 返回更新后的习惯，未找到时返回 nil。
func (t *Tracker) EditHabit(id string, update HabitUpdate) (*Habit, error) {
	var name string
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrHabitNameRequired
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.findHabit(id)
	if idx == -1 {
		return nil, nil
	}

	prev := t.habits[idx]
	if update.Name != nil {
		t.habits[idx].Name = name
	}
	if update.Group != nil {
		t.habits[idx].Group = ResolveGroup(*update.Group)
	}

	if err := t.saveHabits(); err != nil {
		t.habits[idx] = prev
		return nil, err
	}
	habit := t.habits[idx]
	return &habit, nil
}

// ToggleArchive 切换习惯的归档状态，未知 ID 静默忽略。
func (t *Tracker) ToggleArchive(id string) (*Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.findHabit(id)
	if idx == -1 {
		return nil, nil
	}

	t.habits[idx].Archived = !t.habits[idx].Archived

	if err := t.saveHabits(); err != nil {
		t.habits[idx].Archived = !t.habits[idx].Archived
		return nil, err
	}
	habit := t.habits[idx]
	return &habit, nil
}

// DeleteHabit 删除习惯并级联移除其全部打分记录。
// 删除前的二次确认属于调用方边界，这里无条件执行。
func (t *Tracker) DeleteHabit(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.findHabit(id)
	if idx == -1 {
		return false, nil
	}

	prevHabits := t.copyHabits()
	prevEntries := t.copyEntries()

	t.habits = append(t.habits[:idx], t.habits[idx+1:]...)
	t.removeHabitEntries(id)

	// 写入失败时回滚内存，操作对调用方呈现为未发生；
	// 已写入的槽位由下一次成功写入重新对齐
	if err := t.saveHabits(); err != nil {
		t.habits, t.entries = prevHabits, prevEntries
		return false, err
	}
	if err := t.saveEntries(); err != nil {
		t.habits, t.entries = prevHabits, prevEntries
		return false, err
	}
	return true, nil
}

// DuplicateHabit 复制习惯：除 ID 与名称（追加 " (Copy)" 后缀）外克隆全部字段，
// Order 重新取同组习惯数量。未知 ID 静默忽略。
func (t *Tracker) DuplicateHabit(id string) (*Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.findHabit(id)
	if idx == -1 {
		return nil, nil
	}

	source := t.habits[idx]
	clone := source
	clone.ID = newHabitID()
	clone.Name = source.Name + " (Copy)"
	clone.Order = t.countInGroup(ResolveGroup(source.Group))
	prev := t.habits
	t.habits = append(t.habits, clone)

	if err := t.saveHabits(); err != nil {
		t.habits = prev
		return nil, err
	}
	return &clone, nil
}

// MoveHabit 在习惯所属分组内上移或下移一位。
// 实现为与相邻习惯交换 Order 值，其他分组及组内其余习惯的 Order 不受影响；
// 已处于边界时不做任何变更。
func (t *Tracker) MoveHabit(id string, direction MoveDirection) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.findHabit(id)
	if idx == -1 {
		return false, nil
	}

	group := ResolveGroup(t.habits[idx].Group)
	siblings := make([]int, 0, len(t.habits))
	for i := range t.habits {
		if ResolveGroup(t.habits[i].Group) == group {
			siblings = append(siblings, i)
		}
	}
	// 稳定排序：Order 相同时保持加入顺序
	sort.SliceStable(siblings, func(a, b int) bool {
		return t.habits[siblings[a]].Order < t.habits[siblings[b]].Order
	})

	pos := -1
	for i, habitIdx := range siblings {
		if habitIdx == idx {
			pos = i
			break
		}
	}

	var target int
	switch direction {
	case MoveUp:
		if pos <= 0 {
			return false, nil
		}
		target = pos - 1
	case MoveDown:
		if pos == len(siblings)-1 {
			return false, nil
		}
		target = pos + 1
	default:
		return false, nil
	}

	other := siblings[target]
	t.habits[idx].Order, t.habits[other].Order = t.habits[other].Order, t.habits[idx].Order

	if err := t.saveHabits(); err != nil {
		t.habits[idx].Order, t.habits[other].Order = t.habits[other].Order, t.habits[idx].Order
		return false, err
	}
	return true, nil
}

func (t *Tracker) countInGroup(group string) int {
	count := 0
	for i := range t.habits {
		if ResolveGroup(t.habits[i].Group) == group {
			count++
		}
	}
	return count
}
