package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/tracker"
)

// Dashboard 返回趋势页数据：最近窗口的逐日序列、图表刻度与洞察语句。
// 序列与洞察基于当前可见的习惯集合计算，归档习惯的历史分数仍计入总分。
func (a *API) Dashboard(c *gin.Context) {
	showArchived := a.showArchivedFlag(c)
	visible := tracker.VisibleHabits(a.tracker.Habits(), showArchived)
	entries := a.tracker.Entries()
	window := tracker.LastNDates(tracker.DefaultWindowDays)

	series := tracker.DailySeries(visible, entries, window)
	points := make([]gin.H, 0, len(series))
	for _, day := range series {
		points = append(points, gin.H{
			"date":         day.Date,
			"total_score":  day.TotalScore,
			"habit_scores": day.HabitScores,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"series":      points,
		"chart_scale": tracker.ChartScale(series),
		"insights":    tracker.Insights(visible, entries, window),
	})
}
