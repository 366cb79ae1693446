package tracker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrGroupNameRequired 在分组名称为空白时返回。
	ErrGroupNameRequired = errors.New("group name is required")
	// ErrGroupExists 在分组名称已存在时返回。
	ErrGroupExists = errors.New("group already exists")
	// ErrGroupReserved 在尝试删除保留分组时返回。
	ErrGroupReserved = errors.New("the Uncategorized group cannot be deleted")
)

// ConfirmFunc 是调用方注入的二次确认能力，返回 false 表示放弃操作。
type ConfirmFunc func(message string) bool

// AddGroup 新增分组并按字典序重排分组列表。
func (t *Tracker) AddGroup(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrGroupNameRequired
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, group := range t.groups {
		if group == trimmed {
			return ErrGroupExists
		}
	}

	prev := append([]string(nil), t.groups...)
	t.groups = append(t.groups, trimmed)
	sort.Strings(t.groups)

	if err := t.saveGroups(); err != nil {
		t.groups = prev
		return err
	}
	return nil
}

// DeleteGroup 删除分组。保留分组不可删除；分组仍被习惯引用时，
// 需通过 confirm 确认后先将这些习惯迁回保留分组，再移除分组本身，
// 过程中不存在悬空引用的中间状态。返回值表示分组是否被移除。
func (t *Tracker) DeleteGroup(name string, confirm ConfirmFunc) (bool, error) {
	if name == DefaultGroup {
		return false, ErrGroupReserved
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	found := false
	for _, group := range t.groups {
		if group == name {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	inUse := false
	for i := range t.habits {
		if ResolveGroup(t.habits[i].Group) == name {
			inUse = true
			break
		}
	}

	if inUse {
		message := fmt.Sprintf("Group %q is used by some habits. Deleting it will move these habits to '%s'. Continue?", name, DefaultGroup)
		if confirm == nil || !confirm(message) {
			return false, nil
		}
		prevHabits := t.copyHabits()
		for i := range t.habits {
			if ResolveGroup(t.habits[i].Group) == name {
				t.habits[i].Group = DefaultGroup
			}
		}
		if err := t.saveHabits(); err != nil {
			t.habits = prevHabits
			return false, err
		}
	}

	prevGroups := t.groups
	filtered := make([]string, 0, len(t.groups))
	for _, group := range t.groups {
		if group != name {
			filtered = append(filtered, group)
		}
	}
	t.groups = filtered

	if err := t.saveGroups(); err != nil {
		t.groups = prevGroups
		return false, err
	}
	return true, nil
}
