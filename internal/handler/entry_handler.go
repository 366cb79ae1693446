package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/tracker"
)

const dateFormat = "2006-01-02"

type entryPayload struct {
	Date    string  `json:"date"`
	HabitID string  `json:"habit_id"`
	Score   *int    `json:"score"`
	Note    *string `json:"note"`
}

type adjustPayload struct {
	Date    string `json:"date"`
	HabitID string `json:"habit_id"`
	Delta   int    `json:"delta"`
}

// DailyLog 返回某日的打卡页数据：分组后的可见习惯、当日记录与总分。
// date 缺省为今天。
func (a *API) DailyLog(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(dateFormat)
	}
	if !validDate(date) {
		respondError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	showArchived := a.showArchivedFlag(c)
	visible := tracker.VisibleHabits(a.tracker.Habits(), showArchived)
	grouped := tracker.GroupVisibleHabits(visible)

	entries := make(map[string]gin.H, len(visible))
	for _, habit := range visible {
		entry := a.tracker.EntryAt(date, habit.ID)
		entries[habit.ID] = gin.H{"score": entry.Score, "note": entry.Note}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        date,
		"groups":      serializeGroupedHabits(grouped),
		"entries":     entries,
		"daily_total": a.tracker.DailyTotal(date),
	})
}

// UpsertEntry 写入某 (日期, 习惯) 的打分或备注，缺省字段保持原值。
func (a *API) UpsertEntry(c *gin.Context) {
	var payload entryPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}
	if !validDate(payload.Date) {
		respondError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}
	if payload.HabitID == "" {
		respondError(c, http.StatusBadRequest, "habit_id is required")
		return
	}

	if payload.Note != nil {
		note := sanitizeText(*payload.Note)
		payload.Note = &note
	}

	if err := a.tracker.UpsertEntry(payload.Date, payload.HabitID, payload.Score, payload.Note); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save entry")
		return
	}

	entry := a.tracker.EntryAt(payload.Date, payload.HabitID)
	c.JSON(http.StatusOK, gin.H{
		"entry":       gin.H{"score": entry.Score, "note": entry.Note},
		"daily_total": a.tracker.DailyTotal(payload.Date),
	})
}

// AdjustEntry 按 ±1 调整打分并截断到合法区间。
func (a *API) AdjustEntry(c *gin.Context) {
	var payload adjustPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}
	if !validDate(payload.Date) {
		respondError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}
	if payload.HabitID == "" {
		respondError(c, http.StatusBadRequest, "habit_id is required")
		return
	}
	if payload.Delta != 1 && payload.Delta != -1 {
		respondError(c, http.StatusBadRequest, "delta must be 1 or -1")
		return
	}

	entry, err := a.tracker.AdjustScore(payload.Date, payload.HabitID, payload.Delta)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":       gin.H{"score": entry.Score, "note": entry.Note},
		"daily_total": a.tracker.DailyTotal(payload.Date),
	})
}

func validDate(date string) bool {
	_, err := time.Parse(dateFormat, date)
	return err == nil
}
