package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vezbudget/internal/model"
)

// gridCell 表格单元格：一个 (概念, 月份) 的计划/实际数值组，单价为派生字段
type gridCell struct {
	Month         int     `json:"month"`
	PlanValue     float64 `json:"planValue"`
	PlanUnits     float64 `json:"planUnits"`
	PlanUnitPrice float64 `json:"planUnitPrice"`
	RealValue     float64 `json:"realValue"`
	RealUnits     float64 `json:"realUnits"`
	RealUnitPrice float64 `json:"realUnitPrice"`
}

// gridConceptRow 表格概念行
type gridConceptRow struct {
	Concept string     `json:"subCategory"`
	Cells   []gridCell `json:"cells"`
}

// gridCategoryBlock 表格大类区块
type gridCategoryBlock struct {
	Category model.CategoryType `json:"category"`
	Concepts []gridConceptRow   `json:"concepts"`
}

// gridRateCell 汇率行单元格
type gridRateCell struct {
	Month    int     `json:"month"`
	PlanRate float64 `json:"planRate"`
	RealRate float64 `json:"realRate"`
}

// GridResponse 预算表格响应
type GridResponse struct {
	Company    string              `json:"company"`
	Currency   string              `json:"currency"`
	ReadOnly   bool                `json:"readOnly"`
	VersionID  string              `json:"versionId"`
	Year       int                 `json:"year"`
	Categories []gridCategoryBlock `json:"categories"`
	Rates      []gridRateCell      `json:"rates,omitempty"`
}

// GetGrid 读取某公司（或合并视图）的全年预算表格
// GET /api/grid?company=&versionId=&year=
func (h *Handler) GetGrid(c *gin.Context) {
	ref := model.ParseCompanyRef(c.Query("company"))
	versionID := h.versionParam(c)
	year := h.yearParam(c)

	cfg := h.mem.GetConfig()
	assigns := h.mem.Assignments()

	currency := h.mem.Reporting()
	if !ref.IsConsolidated() {
		comp, ok := cfg.Company(ref.Name())
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		currency = comp.Currency
	}

	resp := GridResponse{
		Company:   ref.Name(),
		Currency:  currency,
		ReadOnly:  ref.IsConsolidated(),
		VersionID: versionID,
		Year:      year,
	}

	for _, cat := range model.CategoryTypes {
		block := gridCategoryBlock{Category: cat}
		for _, concept := range cfg.Categories[cat] {
			if !h.conceptVisible(ref, assigns, cfg.Companies, cat, concept) {
				continue
			}
			block.Concepts = append(block.Concepts, gridConceptRow{
				Concept: concept,
				Cells:   h.conceptCells(ref, versionID, cat, concept, year),
			})
		}
		resp.Categories = append(resp.Categories, block)
	}

	if !ref.IsConsolidated() {
		for month := 1; month <= 12; month++ {
			r := h.mem.GetRate(model.RateKey{
				VersionID: versionID,
				Company:   ref.Name(),
				Month:     month,
				Year:      year,
			})
			resp.Rates = append(resp.Rates, gridRateCell{
				Month:    month,
				PlanRate: r.PlanRate,
				RealRate: r.RealRate,
			})
		}
	}

	c.JSON(http.StatusOK, resp)
}

// conceptVisible 概念是否在该视图展示：
// 单公司视图要求指派给该公司；合并视图要求至少指派给一家公司
func (h *Handler) conceptVisible(ref model.CompanyRef, assigns *model.AssignmentSet, companies []model.CompanyDetail, cat model.CategoryType, concept string) bool {
	if !ref.IsConsolidated() {
		return assigns.IsAssigned(ref.Name(), cat, concept)
	}
	for _, comp := range companies {
		if assigns.IsAssigned(comp.Name, cat, concept) {
			return true
		}
	}
	return false
}

// conceptCells 取一个概念 12 个月的单元格
func (h *Handler) conceptCells(ref model.CompanyRef, versionID string, cat model.CategoryType, concept string, year int) []gridCell {
	cells := make([]gridCell, 0, 12)

	if ref.IsConsolidated() {
		for _, e := range h.cons.AggregateYear(versionID, cat, concept, year) {
			cells = append(cells, entryCell(e))
		}
		return cells
	}

	for month := 1; month <= 12; month++ {
		e := h.mem.GetEntry(model.EntryKey{
			VersionID: versionID,
			Company:   ref.Name(),
			Category:  cat,
			Concept:   concept,
			Month:     month,
			Year:      year,
		})
		cells = append(cells, entryCell(e))
	}
	return cells
}

func entryCell(e model.BudgetEntry) gridCell {
	return gridCell{
		Month:         e.Month,
		PlanValue:     e.PlanValue,
		PlanUnits:     e.PlanUnits,
		PlanUnitPrice: e.UnitPrice(model.MeasurePlan),
		RealValue:     e.RealValue,
		RealUnits:     e.RealUnits,
		RealUnitPrice: e.UnitPrice(model.MeasureReal),
	}
}
