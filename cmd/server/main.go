package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/config"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/handler"
	"github.com/habitlog/internal/router"
	"github.com/habitlog/internal/storage"
	"github.com/habitlog/internal/tracker"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 从快照槽位恢复应用状态
	store := storage.NewSnapshotStore(db.DB)
	tr, err := tracker.Load(store)
	if err != nil {
		log.Fatalf("failed to load tracker state: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(handler.NewAPI(tr), cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
