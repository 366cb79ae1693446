package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/habitlog/internal/config"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/storage"
	"github.com/habitlog/internal/tracker"
)

// 测试数据生成器：为默认习惯填充最近一个窗口的随机打卡记录，
// 方便本地查看趋势图与洞察效果。
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	tr, err := tracker.Load(storage.NewSnapshotStore(db.DB))
	if err != nil {
		log.Fatal("状态加载失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	count, err := seedEntries(tr)
	if err != nil {
		log.Fatal("测试数据生成失败:", err)
	}
	if count == 0 {
		fmt.Println("已有打卡数据，跳过生成")
		return
	}

	fmt.Printf("测试数据生成完成！共写入 %d 条打卡记录\n", count)
}

// seedEntries 为每个习惯在最近窗口内随机打分，已有数据时不做任何写入。
func seedEntries(tr *tracker.Tracker) (int, error) {
	if len(tr.Entries()) > 0 {
		return 0, nil
	}

	window := tracker.LastNDates(tracker.DefaultWindowDays)
	count := 0
	for _, habit := range tr.Habits() {
		for _, date := range window {
			// 约三分之一的天数留空，模拟真实的打卡缺口
			if rand.Intn(3) == 0 {
				continue
			}
			score := rand.Intn(tracker.ScoreMax-tracker.ScoreMin+1) + tracker.ScoreMin
			if err := tr.UpsertEntry(date, habit.ID, &score, nil); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
