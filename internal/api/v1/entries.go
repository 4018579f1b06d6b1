package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vezbudget/internal/model"
	"vezbudget/internal/service/calculator"
)

type updateEntryRequest struct {
	Company  string             `json:"company" binding:"required"`
	Category model.CategoryType `json:"category" binding:"required"`
	Concept  string             `json:"subCategory" binding:"required"`
	Month    int                `json:"month" binding:"required"`
	Year     int                `json:"year"`
	Measure  string             `json:"measure" binding:"required"`
	Field    string             `json:"field" binding:"required"`
	Value    string             `json:"value"` // 原始输入，空串/非数字按 0
}

// UpdateEntry 编辑单元格的数量或单价，金额联动重算
// PATCH /api/entries
func (h *Handler) UpdateEntry(c *gin.Context) {
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 合并视图只读，拒绝且不触碰任何公司数据
	if model.ParseCompanyRef(req.Company).IsConsolidated() {
		c.JSON(http.StatusForbidden, gin.H{"error": "consolidated view is read-only"})
		return
	}

	measure, ok := model.ParseMeasure(req.Measure)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measure"})
		return
	}
	field, ok := calculator.ParseEditField(req.Field)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field"})
		return
	}
	if req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	if req.Year == 0 {
		req.Year = h.baseYear
	}

	key := model.EntryKey{
		VersionID: h.versions.ActiveID(),
		Company:   req.Company,
		Category:  req.Category,
		Concept:   req.Concept,
		Month:     req.Month,
		Year:      req.Year,
	}
	e := h.mem.GetEntry(key)
	e = calculator.ReconcileEdit(e, field, measure, req.Value)

	h.mem.UpsertEntry(e)
	if err := h.db.SaveEntry(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entryCell(e))
}

type updateRateRequest struct {
	Company string `json:"company" binding:"required"`
	Month   int    `json:"month" binding:"required"`
	Year    int    `json:"year"`
	Measure string `json:"measure" binding:"required"`
	Value   string `json:"value"` // 本币/申报货币汇率，0 表示未设置
}

// UpdateRate 编辑某公司某月的计划或实际汇率
// PATCH /api/rates
func (h *Handler) UpdateRate(c *gin.Context) {
	var req updateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if model.ParseCompanyRef(req.Company).IsConsolidated() {
		c.JSON(http.StatusForbidden, gin.H{"error": "consolidated view is read-only"})
		return
	}

	measure, ok := model.ParseMeasure(req.Measure)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measure"})
		return
	}
	if req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	if req.Year == 0 {
		req.Year = h.baseYear
	}

	r := h.mem.GetRate(model.RateKey{
		VersionID: h.versions.ActiveID(),
		Company:   req.Company,
		Month:     req.Month,
		Year:      req.Year,
	})
	r.SetRate(measure, calculator.ParseAmount(req.Value))

	h.mem.UpsertRate(r)
	if err := h.db.SaveRate(r); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gridRateCell{
		Month:    r.Month,
		PlanRate: r.PlanRate,
		RealRate: r.RealRate,
	})
}
