package calculator

import (
	"log"

	"vezbudget/internal/model"
	"vezbudget/internal/service/store"
)

// Consolidator 合并汇总引擎：为虚拟合并公司计算按概念逐月的聚合条目
type Consolidator struct {
	store *store.MemoryStore
}

// NewConsolidator 创建合并汇总引擎
func NewConsolidator(s *store.MemoryStore) *Consolidator {
	return &Consolidator{store: s}
}

// Aggregate 计算 (大类, 概念, 月份) 的合并条目
// 金额按各公司当月汇率折算为申报货币后求和；数量不涉及货币，按原值求和
// 未指派该概念的公司不参与。结果是合成的只读条目，永不落库
func (c *Consolidator) Aggregate(versionID string, cat model.CategoryType, concept string, month, year int) model.BudgetEntry {
	cfg := c.store.GetConfig()
	assigns := c.store.Assignments()
	reporting := c.store.Reporting()
	snap := c.store.SnapshotConcept(versionID, cat, concept, month, year, cfg.Companies)

	out := model.BudgetEntry{
		Month:     month,
		Year:      year,
		Company:   model.ConsolidatedName,
		Category:  cat,
		Concept:   concept,
		VersionID: versionID,
	}

	for _, comp := range cfg.Companies {
		if !assigns.IsAssigned(comp.Name, cat, concept) {
			continue
		}
		e := snap.Entries[comp.Name]
		r := snap.Rates[comp.Name]

		planValue, planFallback := ConvertToReporting(e.PlanValue, comp, r, model.MeasurePlan, reporting)
		realValue, realFallback := ConvertToReporting(e.RealValue, comp, r, model.MeasureReal, reporting)
		if (planFallback && e.PlanValue != 0) || (realFallback && e.RealValue != 0) {
			// 缺失汇率会悄悄高估/低估合并值，必须可见
			log.Printf("consolidate: company=%s month=%d missing exchange rate, pass-through at rate 1", comp.Name, month)
		}

		out.PlanValue += planValue
		out.RealValue += realValue
		out.PlanUnits += e.PlanUnits
		out.RealUnits += e.RealUnits
	}

	return out
}

// AggregateYear 计算一个概念全年 12 个月的合并条目
func (c *Consolidator) AggregateYear(versionID string, cat model.CategoryType, concept string, year int) []model.BudgetEntry {
	out := make([]model.BudgetEntry, 0, 12)
	for month := 1; month <= 12; month++ {
		out = append(out, c.Aggregate(versionID, cat, concept, month, year))
	}
	return out
}
