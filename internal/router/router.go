package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件，记住"展示归档习惯"等界面偏好
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("habitlog_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/log", api.DailyLog)

		apiGroup.GET("/habits", api.ListHabits)
		apiGroup.POST("/habits", api.CreateHabit)
		apiGroup.PUT("/habits/:id", api.UpdateHabit)
		apiGroup.POST("/habits/:id/archive", api.ToggleArchiveHabit)
		apiGroup.POST("/habits/:id/duplicate", api.DuplicateHabit)
		apiGroup.POST("/habits/:id/move", api.MoveHabit)
		apiGroup.DELETE("/habits/:id", api.DeleteHabit)

		apiGroup.POST("/entries", api.UpsertEntry)
		apiGroup.POST("/entries/adjust", api.AdjustEntry)

		apiGroup.GET("/dashboard", api.Dashboard)

		apiGroup.GET("/groups", api.ListGroups)
		apiGroup.POST("/groups", api.CreateGroup)
		apiGroup.DELETE("/groups/:name", api.DeleteGroup)

		apiGroup.GET("/backup/export", api.ExportBackup)
		apiGroup.POST("/backup/import", api.ImportBackup)
	}

	return r
}
