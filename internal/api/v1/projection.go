package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vezbudget/internal/model"
	"vezbudget/internal/service/calculator"
)

type projectionRequest struct {
	Company   string             `json:"company" binding:"required"`
	Category  model.CategoryType `json:"category" binding:"required"`
	Concept   string             `json:"subCategory" binding:"required"`
	Year      int                `json:"year"`
	Measure   string             `json:"measure" binding:"required"`
	Target    string             `json:"target" binding:"required"`
	Method    string             `json:"method" binding:"required"`
	GrowthPct float64            `json:"growthPct"`
}

// ProjectionResponse 预测结果：2..12 月写回后的单元格
type ProjectionResponse struct {
	Cells []gridCell `json:"cells"`
}

// RunProjection 以 1 月为基期批量填充 2..12 月
// POST /api/projection
func (h *Handler) RunProjection(c *gin.Context) {
	var req projectionRequest
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
	target, ok := calculator.ParseTargetVariable(req.Target)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target"})
		return
	}
	method, ok := calculator.ParseProjectionMethod(req.Method)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid method"})
		return
	}
	if req.Year == 0 {
		req.Year = h.baseYear
	}

	batch := calculator.Project(h.mem, calculator.ProjectionRequest{
		VersionID: h.versions.ActiveID(),
		Company:   req.Company,
		Category:  req.Category,
		Concept:   req.Concept,
		Year:      req.Year,
		Measure:   measure,
		Target:    target,
		Method:    method,
		GrowthPct: req.GrowthPct,
	})

	h.mem.ApplyBatch(batch)
	if err := h.db.SaveBatch(batch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := ProjectionResponse{Cells: make([]gridCell, 0, len(batch.Entries))}
	for _, e := range batch.Entries {
		resp.Cells = append(resp.Cells, entryCell(e))
	}
	c.JSON(http.StatusOK, resp)
}
