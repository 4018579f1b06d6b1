package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"vezbudget/internal/service/calculator"
	"vezbudget/internal/service/scenario"
	memstore "vezbudget/internal/service/store"
	dbstore "vezbudget/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	mem      *memstore.MemoryStore
	db       *dbstore.Store
	versions *scenario.Manager
	cons     *calculator.Consolidator
	baseYear int
}

// NewHandler 创建 V1 API 处理器
func NewHandler(mem *memstore.MemoryStore, db *dbstore.Store, versions *scenario.Manager, baseYear int) *Handler {
	return &Handler{
		mem:      mem,
		db:       db,
		versions: versions,
		cons:     calculator.NewConsolidator(mem),
		baseYear: baseYear,
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 公司与科目配置
	router.GET("/config", h.GetConfig)
	router.POST("/companies", h.CreateCompany)
	router.PATCH("/companies/:id", h.UpdateCompany)
	router.DELETE("/companies/:id", h.DeleteCompany)
	router.POST("/concepts", h.CreateConcept)
	router.POST("/concepts/rename", h.RenameConcept)
	router.POST("/concepts/delete", h.DeleteConcept)
	router.PUT("/assignments", h.SetAssignment)

	// 版本管理
	router.GET("/versions", h.ListVersions)
	router.POST("/versions", h.CreateVersion)
	router.POST("/versions/:id/clone", h.CloneVersion)
	router.POST("/versions/:id/activate", h.ActivateVersion)

	// 预算表格与编辑
	router.GET("/grid", h.GetGrid)
	router.PATCH("/entries", h.UpdateEntry)
	router.PATCH("/rates", h.UpdateRate)

	// 批量预测
	router.POST("/projection", h.RunProjection)

	// 汇总看板
	router.GET("/summary", h.GetSummary)
}

// yearParam 解析年份参数，缺省为预算年度
func (h *Handler) yearParam(c *gin.Context) int {
	return parseIntWithDefault(c.Query("year"), h.baseYear)
}

func parseIntWithDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// versionParam 解析版本参数，缺省为活动版本
func (h *Handler) versionParam(c *gin.Context) string {
	if v := c.Query("versionId"); v != "" {
		return v
	}
	return h.versions.ActiveID()
}
