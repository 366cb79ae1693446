package tracker

import (
	"testing"
	"time"
)

func trendWindow() []string {
	return LastNDatesFrom(time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC), DefaultWindowDays)
}

func TestLastNDatesFromOldestFirstInclusive(t *testing.T) {
	window := trendWindow()
	if len(window) != 14 {
		t.Fatalf("expected 14 dates, got %d", len(window))
	}
	if window[0] != "2024-05-01" {
		t.Fatalf("expected window to start at 2024-05-01, got %s", window[0])
	}
	if window[13] != "2024-05-14" {
		t.Fatalf("expected window to end at today, got %s", window[13])
	}
}

func TestDailySeriesTotalsAndHabitScores(t *testing.T) {
	habits := []Habit{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	entries := EntryMap{
		"2024-05-01": {
			"a":      {Score: 2},
			"b":      {Score: -1},
			"hidden": {Score: 3}, // 不在传入集合中的习惯仍计入总分
		},
	}

	series := DailySeries(habits, entries, trendWindow())
	if len(series) != 14 {
		t.Fatalf("expected 14 points, got %d", len(series))
	}

	first := series[0]
	if first.Date != "2024-05-01" {
		t.Fatalf("unexpected first date: %s", first.Date)
	}
	if first.TotalScore != 4 {
		t.Fatalf("expected total 4 including out-of-set habit, got %d", first.TotalScore)
	}
	if first.HabitScores["a"] != 2 || first.HabitScores["b"] != -1 {
		t.Fatalf("unexpected habit scores: %v", first.HabitScores)
	}
	if _, ok := first.HabitScores["hidden"]; ok {
		t.Fatal("expected habit scores restricted to supplied set")
	}

	if series[1].TotalScore != 0 {
		t.Fatalf("expected empty day total 0, got %d", series[1].TotalScore)
	}
}

func TestChartScaleFloor(t *testing.T) {
	series := []DailyScore{{TotalScore: 1}, {TotalScore: -2}}
	if scale := ChartScale(series); scale != 5 {
		t.Fatalf("expected minimum scale 5, got %d", scale)
	}

	series = append(series, DailyScore{TotalScore: -9})
	if scale := ChartScale(series); scale != 9 {
		t.Fatalf("expected scale 9 from largest magnitude, got %d", scale)
	}
}

func TestInsightsPlaceholderForFewHabits(t *testing.T) {
	insights := Insights([]Habit{{ID: "a", Name: "A"}}, EntryMap{}, trendWindow())
	if len(insights) != 1 || insights[0] != "Add more habits to see trend insights." {
		t.Fatalf("unexpected placeholder insights: %v", insights)
	}
}

func TestInsightsThreshold(t *testing.T) {
	habits := []Habit{
		{ID: "a", Name: "Sleep"},
		{ID: "b", Name: "Focus"},
	}
	window := trendWindow()

	// 14 天窗口阈值为 5.6 天：7 天共同低分应产出洞察
	entries := EntryMap{}
	for i := 0; i < 7; i++ {
		entries[window[i]] = map[string]Entry{
			"a": {Score: -1},
			"b": {Score: -2},
		}
	}

	insights := Insights(habits, entries, window)
	if len(insights) != 1 {
		t.Fatalf("expected single insight, got %v", insights)
	}
	want := "When 'Sleep' is low, 'Focus' also tends to be low."
	if insights[0] != want {
		t.Fatalf("unexpected insight: got %q want %q", insights[0], want)
	}

	// 5 天共同低分不过线，回退到鼓励消息
	entries = EntryMap{}
	for i := 0; i < 5; i++ {
		entries[window[i]] = map[string]Entry{
			"a": {Score: -1},
			"b": {Score: -2},
		}
	}
	insights = Insights(habits, entries, window)
	if len(insights) != 1 || insights[0] != "Keep tracking to find insights!" {
		t.Fatalf("expected encouragement message, got %v", insights)
	}
}

func TestInsightsLowBeforeHighWithinPair(t *testing.T) {
	habits := []Habit{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	window := trendWindow()

	entries := EntryMap{}
	for i := 0; i < 6; i++ {
		entries[window[i]] = map[string]Entry{
			"a": {Score: -1},
			"b": {Score: -1},
		}
	}
	for i := 6; i < 12; i++ {
		entries[window[i]] = map[string]Entry{
			"a": {Score: 1},
			"b": {Score: 2},
		}
	}

	insights := Insights(habits, entries, window)
	if len(insights) != 2 {
		t.Fatalf("expected both directions to emit, got %v", insights)
	}
	if insights[0] != "When 'A' is low, 'B' also tends to be low." {
		t.Fatalf("expected low insight first, got %q", insights[0])
	}
	if insights[1] != "When 'A' is high, 'B' also tends to be high." {
		t.Fatalf("expected high insight second, got %q", insights[1])
	}
}

func TestInsightsPairIterationOrder(t *testing.T) {
	habits := []Habit{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
	}
	window := trendWindow()

	// 所有三个习惯 7 天同高：配对按 (i, j) 升序产出
	entries := EntryMap{}
	for i := 0; i < 7; i++ {
		entries[window[i]] = map[string]Entry{
			"a": {Score: 1},
			"b": {Score: 1},
			"c": {Score: 1},
		}
	}

	insights := Insights(habits, entries, window)
	want := []string{
		"When 'A' is high, 'B' also tends to be high.",
		"When 'A' is high, 'C' also tends to be high.",
		"When 'B' is high, 'C' also tends to be high.",
	}
	if len(insights) != len(want) {
		t.Fatalf("expected %d insights, got %v", len(want), insights)
	}
	for i := range want {
		if insights[i] != want[i] {
			t.Fatalf("unexpected order at %d: got %q want %q", i, insights[i], want[i])
		}
	}
}
