package calculator

import (
	"testing"

	"vezbudget/internal/model"
)

func TestSummarizeSingleCompanyLocalCurrency(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Tech", model.CategoryIncome, "Licencias SaaS", 1, 5000000, 50, 5250000, 52)
	putEntry(s, "Vezeel Tech", model.CategoryDirectCosts, "Freelancers", 1, 800000, 8, 900000, 9)
	putRate(s, "Vezeel Tech", 1, 1000, 1050)

	months, totals := Summarize(s, model.RealCompany("Vezeel Tech"), testVersion, 2026, false)

	if len(months) != 12 {
		t.Fatalf("got %d months, want 12", len(months))
	}
	jan := months[0]
	if !almostEqual(jan.IncomePlan, 5000000) {
		t.Errorf("income plan = %v, want local 5000000", jan.IncomePlan)
	}
	if !almostEqual(jan.ExpenseReal, 900000) {
		t.Errorf("expense real = %v, want 900000", jan.ExpenseReal)
	}
	if !almostEqual(jan.NetPlan, 4200000) {
		t.Errorf("net plan = %v, want 4200000", jan.NetPlan)
	}
	if !almostEqual(totals.IncomePlan, 5000000) {
		t.Errorf("total income plan = %v", totals.IncomePlan)
	}
}

func TestSummarizeSingleCompanyInReporting(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Tech", model.CategoryIncome, "Licencias SaaS", 1, 5000000, 50, 0, 0)
	putRate(s, "Vezeel Tech", 1, 1000, 0)

	months, _ := Summarize(s, model.RealCompany("Vezeel Tech"), testVersion, 2026, true)

	if !almostEqual(months[0].IncomePlan, 5000) {
		t.Errorf("income plan = %v, want converted 5000", months[0].IncomePlan)
	}
}

func TestSummarizeConsolidatedAllCompanies(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 15000, 10, 0, 0)
	putEntry(s, "Vezeel Tech", model.CategoryIncome, "Licencias SaaS", 1, 5000000, 50, 0, 0)
	putEntry(s, "Vezeel Sales", model.CategoryIndirectCosts, "Oficina", 1, 2000, 1, 0, 0)
	putRate(s, "Vezeel Tech", 1, 1000, 0)

	months, totals := Summarize(s, model.ConsolidatedView(), testVersion, 2026, false)

	if !almostEqual(months[0].IncomePlan, 20000) {
		t.Errorf("consolidated income plan = %v, want 20000", months[0].IncomePlan)
	}
	if !almostEqual(totals.NetPlan, 18000) {
		t.Errorf("consolidated net plan = %v, want 18000", totals.NetPlan)
	}
}

func TestSummarizeExcludesUnassigned(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 15000, 10, 0, 0)
	s.Unassign("Vezeel Sales", model.CategoryIncome, "Licencias SaaS")

	_, totals := Summarize(s, model.RealCompany("Vezeel Sales"), testVersion, 2026, false)

	if totals.IncomePlan != 0 {
		t.Errorf("income plan = %v, unassigned concept should not count", totals.IncomePlan)
	}
}

func TestSummarizeIndicators(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 10000, 10, 9000, 9)
	putEntry(s, "Vezeel Sales", model.CategoryDirectCosts, "Freelancers", 1, 4000, 4, 5000, 5)

	_, totals := Summarize(s, model.RealCompany("Vezeel Sales"), testVersion, 2026, false)

	if !almostEqual(totals.Compliance, 90) {
		t.Errorf("compliance = %v, want 90", totals.Compliance)
	}
	if !almostEqual(totals.ExpenseDeviation, 25) {
		t.Errorf("expense deviation = %v, want 25", totals.ExpenseDeviation)
	}
	// 计划净利 6000/10000，实际净利 4000/9000
	if !almostEqual(totals.NetMarginPlan, 60) {
		t.Errorf("plan net margin = %v, want 60", totals.NetMarginPlan)
	}
	if !almostEqual(totals.NetMarginReal, 4000.0/9000*100) {
		t.Errorf("real net margin = %v", totals.NetMarginReal)
	}
}

func TestSummarizeZeroPlanNoDivision(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 0, 0, 5000, 5)

	_, totals := Summarize(s, model.RealCompany("Vezeel Sales"), testVersion, 2026, false)

	if totals.Compliance != 0 {
		t.Errorf("compliance = %v, want 0 when plan income is 0", totals.Compliance)
	}
	if totals.ExpenseDeviation != 0 {
		t.Errorf("expense deviation = %v, want 0 when plan expense is 0", totals.ExpenseDeviation)
	}
}
