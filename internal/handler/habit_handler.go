package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/tracker"
)

type habitPayload struct {
	Name  string `json:"name"`
	Group string `json:"group"`
}

type habitUpdatePayload struct {
	Name  *string `json:"name"`
	Group *string `json:"group"`
}

type movePayload struct {
	Direction string `json:"direction"`
}

// ListHabits 返回按分组聚合的可见习惯列表。
func (a *API) ListHabits(c *gin.Context) {
	showArchived := a.showArchivedFlag(c)

	habits := a.tracker.Habits()
	visible := tracker.VisibleHabits(habits, showArchived)
	grouped := tracker.GroupVisibleHabits(visible)

	archivedCount := 0
	for _, habit := range habits {
		if habit.Archived {
			archivedCount++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"groups":         serializeGroupedHabits(grouped),
		"show_archived":  showArchived,
		"archived_count": archivedCount,
	})
}

// CreateHabit 新建习惯。
func (a *API) CreateHabit(c *gin.Context) {
	var payload habitPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	habit, err := a.tracker.AddHabit(sanitizeText(payload.Name), sanitizeText(payload.Group))
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// UpdateHabit 更新习惯名称或分组，缺省字段保持原值。
func (a *API) UpdateHabit(c *gin.Context) {
	var payload habitUpdatePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	update := tracker.HabitUpdate{}
	if payload.Name != nil {
		name := sanitizeText(*payload.Name)
		update.Name = &name
	}
	if payload.Group != nil {
		group := sanitizeText(*payload.Group)
		update.Group = &group
	}

	habit, err := a.tracker.EditHabit(c.Param("id"), update)
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	if habit == nil {
		respondError(c, http.StatusNotFound, "habit not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// ToggleArchiveHabit 切换归档状态。
func (a *API) ToggleArchiveHabit(c *gin.Context) {
	habit, err := a.tracker.ToggleArchive(c.Param("id"))
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	if habit == nil {
		respondError(c, http.StatusNotFound, "habit not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// DuplicateHabit 复制习惯。
func (a *API) DuplicateHabit(c *gin.Context) {
	habit, err := a.tracker.DuplicateHabit(c.Param("id"))
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	if habit == nil {
		respondError(c, http.StatusNotFound, "habit not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// MoveHabit 在分组内上移或下移习惯。
func (a *API) MoveHabit(c *gin.Context) {
	var payload movePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	direction := tracker.MoveDirection(payload.Direction)
	if direction != tracker.MoveUp && direction != tracker.MoveDown {
		respondError(c, http.StatusBadRequest, "direction must be up or down")
		return
	}

	moved, err := a.tracker.MoveHabit(c.Param("id"), direction)
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

// DeleteHabit 删除习惯及其全部记录。删除确认由前端完成，接口无条件执行。
func (a *API) DeleteHabit(c *gin.Context) {
	deleted, err := a.tracker.DeleteHabit(c.Param("id"))
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func habitToPayload(habit tracker.Habit) gin.H {
	return gin.H{
		"id":       habit.ID,
		"name":     habit.Name,
		"group":    habit.Group,
		"order":    habit.Order,
		"archived": habit.Archived,
	}
}

func serializeGroupedHabits(grouped []tracker.GroupedHabits) []gin.H {
	sections := make([]gin.H, 0, len(grouped))
	for _, section := range grouped {
		habits := make([]gin.H, 0, len(section.Habits))
		for _, habit := range section.Habits {
			habits = append(habits, habitToPayload(habit))
		}
		sections = append(sections, gin.H{"name": section.Group, "habits": habits})
	}
	return sections
}

func handleTrackerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrHabitNameRequired):
		respondError(c, http.StatusBadRequest, "habit name is required")
	case errors.Is(err, tracker.ErrGroupNameRequired):
		respondError(c, http.StatusBadRequest, "group name is required")
	case errors.Is(err, tracker.ErrGroupExists):
		respondError(c, http.StatusBadRequest, "This group name already exists.")
	case errors.Is(err, tracker.ErrGroupReserved):
		respondError(c, http.StatusBadRequest, "'Uncategorized' group cannot be deleted.")
	default:
		respondError(c, http.StatusInternalServerError, "operation failed")
	}
}
