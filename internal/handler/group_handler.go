package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type groupPayload struct {
	Name string `json:"name"`
}

// ListGroups 返回全部分组名称。
func (a *API) ListGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": a.tracker.Groups()})
}

// CreateGroup 新增分组。
func (a *API) CreateGroup(c *gin.Context) {
	var payload groupPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	if err := a.tracker.AddGroup(sanitizeText(payload.Name)); err != nil {
		handleTrackerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": a.tracker.Groups()})
}

// DeleteGroup 删除分组。分组仍被习惯引用时需要 confirm=true 二次确认，
// 未确认的请求返回 409 并带上确认提示语，由前端转述给用户。
func (a *API) DeleteGroup(c *gin.Context) {
	name := c.Param("name")
	confirmed := c.Query("confirm") == "true"

	var prompt string
	deleted, err := a.tracker.DeleteGroup(name, func(message string) bool {
		prompt = message
		return confirmed
	})
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	if !deleted && prompt != "" {
		c.JSON(http.StatusConflict, gin.H{"confirm": prompt})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "groups": a.tracker.Groups()})
}
