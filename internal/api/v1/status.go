package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized     bool   `json:"initialized"`     // 是否已初始化（有数据）
	BaseYear        int    `json:"baseYear"`        // 预算年度
	ActiveVersionID string `json:"activeVersionId"` // 当前活动版本
	TotalCompanies  int    `json:"totalCompanies"`  // 公司数
	TotalEntries    int    `json:"totalEntries"`    // 活动版本条目数
	Currency        string `json:"currency"`        // 申报货币
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	activeID := h.versions.ActiveID()
	cfg := h.mem.GetConfig()

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:     activeID != "",
		BaseYear:        h.baseYear,
		ActiveVersionID: activeID,
		TotalCompanies:  len(cfg.Companies),
		TotalEntries:    h.mem.CountEntries(activeID),
		Currency:        h.mem.Reporting(),
	})
}
