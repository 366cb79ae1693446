package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/tracker"
)

// maxBackupBytes 限制导入文件大小，备份是纯文本 JSON，10MB 足够多年数据。
const maxBackupBytes = 10 << 20

// ExportBackup 以附件形式下载当前全部数据的 JSON 备份。
func (a *API) ExportBackup(c *gin.Context) {
	filename := fmt.Sprintf("habit_tracker_backup_%s.json", time.Now().Format(dateFormat))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, a.tracker.Export())
}

// ImportBackup 解析上传的备份并整体替换当前数据。
// 解析成功前不触碰现有状态，格式非法时原数据保持不变。
func (a *API) ImportBackup(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupBytes))
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read upload")
		return
	}

	doc, err := tracker.Decode(data)
	if err != nil {
		// Decode 对一切解析与格式问题统一返回 ErrInvalidBackup
		respondError(c, http.StatusBadRequest, "Invalid data file format. Make sure it's a valid JSON backup from this app.")
		return
	}

	if err := a.tracker.Import(doc); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to import backup")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habits":  len(doc.Habits),
		"groups":  len(doc.Groups),
		"message": "Data imported successfully!",
	})
}
