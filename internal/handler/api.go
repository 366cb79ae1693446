package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/tracker"
)

const showArchivedSessionKey = "show_archived"

// API 聚合各 HTTP 处理器共享的依赖。
type API struct {
	tracker *tracker.Tracker
}

// NewAPI 基于核心状态容器构造处理器集合。
func NewAPI(tr *tracker.Tracker) *API {
	return &API{tracker: tr}
}

// showArchivedFlag 解析是否展示归档习惯：显式传参时写入会话作为后续默认值，
// 未传参时回退会话中记住的偏好。
func (a *API) showArchivedFlag(c *gin.Context) bool {
	session := sessions.Default(c)

	if raw, ok := c.GetQuery("show_archived"); ok {
		show := raw == "true" || raw == "1"
		session.Set(showArchivedSessionKey, show)
		if err := session.Save(); err != nil {
			c.Error(err)
		}
		return show
	}

	if remembered, ok := session.Get(showArchivedSessionKey).(bool); ok {
		return remembered
	}
	return false
}
