package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vezbudget/internal/model"
	"vezbudget/internal/service/calculator"
)

// SummaryResponse 汇总看板响应
type SummaryResponse struct {
	Company  string                    `json:"company"`
	Currency string                    `json:"currency"`
	Months   []calculator.MonthSummary `json:"months"`
	Totals   calculator.SummaryTotals  `json:"totals"`
}

// GetSummary 汇总某公司（或合并视图）12 个月的收支序列与年度指标
// GET /api/summary?company=&versionId=&year=&inReporting=
func (h *Handler) GetSummary(c *gin.Context) {
	ref := model.ParseCompanyRef(c.Query("company"))
	versionID := h.versionParam(c)
	year := h.yearParam(c)
	inReporting := c.Query("inReporting") == "true"

	currency := h.mem.Reporting()
	if !ref.IsConsolidated() && !inReporting {
		cfg := h.mem.GetConfig()
		comp, ok := cfg.Company(ref.Name())
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		currency = comp.Currency
	}

	months, totals := calculator.Summarize(h.mem, ref, versionID, year, inReporting)

	c.JSON(http.StatusOK, SummaryResponse{
		Company:  ref.Name(),
		Currency: currency,
		Months:   months,
		Totals:   totals,
	})
}
