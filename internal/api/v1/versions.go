package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vezbudget/internal/model"
)

// ListVersionsResponse 版本列表响应
type ListVersionsResponse struct {
	Items    []model.BudgetVersion `json:"items"`
	ActiveID string                `json:"activeId"`
}

// ListVersions 列出全部预算版本
// GET /api/versions
func (h *Handler) ListVersions(c *gin.Context) {
	items, err := h.versions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListVersionsResponse{
		Items:    items,
		ActiveID: h.versions.ActiveID(),
	})
}

type createVersionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateVersion 创建空白版本
// POST /api/versions
func (h *Handler) CreateVersion(c *gin.Context) {
	var req createVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.versions.Create(req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

type cloneVersionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CloneVersion 克隆版本：复制源版本全部条目与汇率
// POST /api/versions/:id/clone
func (h *Handler) CloneVersion(c *gin.Context) {
	var req cloneVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.versions.Clone(c.Param("id"), req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

// ActivateVersion 切换活动版本
// POST /api/versions/:id/activate
func (h *Handler) ActivateVersion(c *gin.Context) {
	id := c.Param("id")
	if err := h.versions.Activate(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activeId": id})
}
