package tracker

import (
	"sort"
)

// GroupedHabits 表示一个分组及组内有序的习惯列表。
type GroupedHabits struct {
	Group  string
	Habits []Habit
}

// VisibleHabits 过滤并排序习惯列表：除非 showArchived，否则隐藏归档习惯；
// 排序键为 (分组名升序, Order 升序)，分组名按普通字节序比较。
// 纯函数，每次调用基于传入状态重新计算。
func VisibleHabits(habits []Habit, showArchived bool) []Habit {
	visible := make([]Habit, 0, len(habits))
	for _, habit := range habits {
		if habit.Archived && !showArchived {
			continue
		}
		visible = append(visible, habit)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].Group != visible[j].Group {
			return visible[i].Group < visible[j].Group
		}
		return visible[i].Order < visible[j].Order
	})

	return visible
}

// GroupVisibleHabits 将可见习惯按分组聚合为有序的分组序列：
// 分组名按字典序排列，但保留分组始终排在最后；组内按 Order 升序。
func GroupVisibleHabits(visible []Habit) []GroupedHabits {
	byGroup := make(map[string][]Habit)
	names := make([]string, 0)
	for _, habit := range visible {
		group := ResolveGroup(habit.Group)
		if _, ok := byGroup[group]; !ok {
			names = append(names, group)
		}
		byGroup[group] = append(byGroup[group], habit)
	}

	sort.SliceStable(names, func(i, j int) bool {
		if names[i] == DefaultGroup {
			return false
		}
		if names[j] == DefaultGroup {
			return true
		}
		return names[i] < names[j]
	})

	grouped := make([]GroupedHabits, 0, len(names))
	for _, name := range names {
		habits := byGroup[name]
		sort.SliceStable(habits, func(i, j int) bool {
			return habits[i].Order < habits[j].Order
		})
		grouped = append(grouped, GroupedHabits{Group: name, Habits: habits})
	}

	return grouped
}
