package calculator

import (
	"log"

	"vezbudget/internal/model"
	"vezbudget/internal/service/store"
)

// MonthSummary 单月计划/实际收支汇总
type MonthSummary struct {
	Month       int     `json:"month"`
	IncomePlan  float64 `json:"incomePlan"`
	IncomeReal  float64 `json:"incomeReal"`
	ExpensePlan float64 `json:"expensePlan"`
	ExpenseReal float64 `json:"expenseReal"`
	NetPlan     float64 `json:"netPlan"`
	NetReal     float64 `json:"netReal"`
}

// SummaryTotals 年度累计指标
type SummaryTotals struct {
	IncomePlan  float64 `json:"incomePlan"`
	IncomeReal  float64 `json:"incomeReal"`
	ExpensePlan float64 `json:"expensePlan"`
	ExpenseReal float64 `json:"expenseReal"`
	NetPlan     float64 `json:"netPlan"`
	NetReal     float64 `json:"netReal"`

	Compliance       float64 `json:"compliance"`       // 销售达成率 %（实际收入 / 计划收入）
	NetMarginPlan    float64 `json:"netMarginPlan"`    // 计划净利率 %
	NetMarginReal    float64 `json:"netMarginReal"`    // 实际净利率 %
	ExpenseDeviation float64 `json:"expenseDeviation"` // 费用偏差 %（实际支出相对计划）
}

// Summarize 汇总某版本 12 个月的收支序列与年度指标
// ref 为合并视图时覆盖全部公司并强制折算申报货币；
// 单公司且 inReporting=false 时按本币原值汇总
// 未指派给条目所属公司的概念不计入
func Summarize(s *store.MemoryStore, ref model.CompanyRef, versionID string, year int, inReporting bool) ([]MonthSummary, SummaryTotals) {
	cfg := s.GetConfig()
	assigns := s.Assignments()
	reporting := s.Reporting()
	convert := ref.IsConsolidated() || inReporting

	months := make([]MonthSummary, 0, 12)
	var totals SummaryTotals

	for month := 1; month <= 12; month++ {
		ms := MonthSummary{Month: month}

		for _, e := range s.MonthEntries(versionID, month, year) {
			if !ref.IsConsolidated() && e.Company != ref.Name() {
				continue
			}
			if !assigns.IsAssigned(e.Company, e.Category, e.Concept) {
				continue
			}

			planValue := e.PlanValue
			realValue := e.RealValue
			if convert {
				comp, ok := cfg.Company(e.Company)
				if ok && comp.Currency != reporting {
					r := s.GetRate(model.RateKey{
						VersionID: versionID,
						Company:   e.Company,
						Month:     month,
						Year:      year,
					})
					var planFallback, realFallback bool
					planValue, planFallback = ConvertToReporting(planValue, comp, r, model.MeasurePlan, reporting)
					realValue, realFallback = ConvertToReporting(realValue, comp, r, model.MeasureReal, reporting)
					if (planFallback && planValue != 0) || (realFallback && realValue != 0) {
						log.Printf("summary: company=%s month=%d missing exchange rate, pass-through at rate 1", e.Company, month)
					}
				}
			}

			if e.Category.IsIncome() {
				ms.IncomePlan += planValue
				ms.IncomeReal += realValue
			} else {
				ms.ExpensePlan += planValue
				ms.ExpenseReal += realValue
			}
		}

		ms.NetPlan = ms.IncomePlan - ms.ExpensePlan
		ms.NetReal = ms.IncomeReal - ms.ExpenseReal
		months = append(months, ms)

		totals.IncomePlan += ms.IncomePlan
		totals.IncomeReal += ms.IncomeReal
		totals.ExpensePlan += ms.ExpensePlan
		totals.ExpenseReal += ms.ExpenseReal
	}

	totals.NetPlan = totals.IncomePlan - totals.ExpensePlan
	totals.NetReal = totals.IncomeReal - totals.ExpenseReal
	if totals.IncomePlan > 0 {
		totals.Compliance = totals.IncomeReal / totals.IncomePlan * 100
		totals.NetMarginPlan = totals.NetPlan / totals.IncomePlan * 100
	}
	if totals.IncomeReal > 0 {
		totals.NetMarginReal = totals.NetReal / totals.IncomeReal * 100
	}
	if totals.ExpensePlan > 0 {
		totals.ExpenseDeviation = (totals.ExpenseReal - totals.ExpensePlan) / totals.ExpensePlan * 100
	}
	return months, totals
}
