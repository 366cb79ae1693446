package tracker

import (
	"fmt"
	"time"
)

const (
	dateFormat = "2006-01-02"

	// DefaultWindowDays 是趋势与洞察计算默认的回溯天数（含当天）。
	DefaultWindowDays = 14

	// insightThresholdRatio：某个方向的共现天数严格超过窗口长度的该比例才产出洞察。
	insightThresholdRatio = 0.4
)

// DailyScore 表示窗口内某一天的汇总数据。
// TotalScore 汇总当日全部记录（含归档习惯），HabitScores 仅覆盖传入的习惯集合。
type DailyScore struct {
	Date        string
	TotalScore  int
	HabitScores map[string]int
}

// LastNDates 返回截至今天（含）的 n 个连续日期，从最早到最晚排列。
func LastNDates(n int) []string {
	return LastNDatesFrom(time.Now(), n)
}

// LastNDatesFrom 返回截至 now（含）的 n 个连续日期，从最早到最晚排列。
func LastNDatesFrom(now time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, now.AddDate(0, 0, -i).Format(dateFormat))
	}
	return dates
}

// DailySeries 为窗口内的每一天计算总分与传入习惯集合的单项得分。
// 纯函数，每次调用基于传入状态重新计算。
func DailySeries(habits []Habit, entries EntryMap, window []string) []DailyScore {
	series := make([]DailyScore, 0, len(window))
	for _, date := range window {
		scores := make(map[string]int, len(habits))
		for _, habit := range habits {
			scores[habit.ID] = entries[date][habit.ID].Score
		}
		series = append(series, DailyScore{
			Date:        date,
			TotalScore:  dailyTotal(entries, date),
			HabitScores: scores,
		})
	}
	return series
}

// ChartScale 返回图表的纵轴刻度：总分绝对值的最大值，且不低于 5，
// 避免安静时段图表过度放大。
func ChartScale(series []DailyScore) int {
	scale := 5
	for _, day := range series {
		abs := day.TotalScore
		if abs < 0 {
			abs = -abs
		}
		if abs > scale {
			scale = abs
		}
	}
	return scale
}

// Insights 对传入习惯集合做两两共现扫描：统计窗口内两者同为负分
// 与同为正分的天数，任一方向严格超过阈值即产出对应的洞察语句。
// 习惯不足两个或没有任何配对过线时返回单条占位消息。
func Insights(habits []Habit, entries EntryMap, window []string) []string {
	if len(habits) < 2 {
		return []string{"Add more habits to see trend insights."}
	}

	scores := make(map[string][]int, len(habits))
	for _, habit := range habits {
		row := make([]int, 0, len(window))
		for _, date := range window {
			row = append(row, entries[date][habit.ID].Score)
		}
		scores[habit.ID] = row
	}

	threshold := float64(len(window)) * insightThresholdRatio
	insights := make([]string, 0)

	for i := 0; i < len(habits); i++ {
		for j := i + 1; j < len(habits); j++ {
			habitA := habits[i]
			habitB := habits[j]
			lowBoth := 0
			highBoth := 0

			for k := range window {
				scoreA := scores[habitA.ID][k]
				scoreB := scores[habitB.ID][k]
				if scoreA < 0 && scoreB < 0 {
					lowBoth++
				}
				if scoreA > 0 && scoreB > 0 {
					highBoth++
				}
			}

			if float64(lowBoth) > threshold {
				insights = append(insights, fmt.Sprintf("When '%s' is low, '%s' also tends to be low.", habitA.Name, habitB.Name))
			}
			if float64(highBoth) > threshold {
				insights = append(insights, fmt.Sprintf("When '%s' is high, '%s' also tends to be high.", habitA.Name, habitB.Name))
			}
		}
	}

	if len(insights) == 0 {
		return []string{"Keep tracking to find insights!"}
	}
	return insights
}
