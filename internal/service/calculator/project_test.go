package calculator

import (
	"math"
	"testing"

	"vezbudget/internal/model"
)

func projReq(target TargetVariable, method ProjectionMethod, growth float64) ProjectionRequest {
	return ProjectionRequest{
		VersionID: testVersion,
		Company:   "Vezeel Sales",
		Category:  model.CategoryIncome,
		Concept:   "Licencias SaaS",
		Year:      2026,
		Measure:   model.MeasurePlan,
		Target:    target,
		Method:    method,
		GrowthPct: growth,
	}
}

func TestProjectReplicateQuantity(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 15000, 10, 0, 0)

	batch := Project(s, projReq(TargetQuantity, MethodReplicate, 0))

	if len(batch.Entries) != 11 {
		t.Fatalf("got %d entries, want 11 (months 2-12)", len(batch.Entries))
	}
	for _, e := range batch.Entries {
		if e.PlanUnits != 10 {
			t.Errorf("month %d units = %v, want 10", e.Month, e.PlanUnits)
		}
		// 当月数量为 0，单价回退一月的 1500
		if !almostEqual(e.PlanValue, 15000) {
			t.Errorf("month %d value = %v, want 15000", e.Month, e.PlanValue)
		}
	}
}

func TestProjectCompoundFromFixedBase(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 15000, 10, 0, 0)

	batch := Project(s, projReq(TargetQuantity, MethodCompound, 10))

	// 每月都从一月基期复利，而不是顺推上月
	for i, e := range batch.Entries {
		month := i + 2
		want := 10 * math.Pow(1.1, float64(month-1))
		if !almostEqual(e.PlanUnits, want) {
			t.Errorf("month %d units = %v, want %v", month, e.PlanUnits, want)
		}
	}
}

func TestProjectQuantityKeepsExistingPrice(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 15000, 10, 0, 0)
	// 三月已有自己的单价 2000，预测数量时应保留
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 3, 8000, 4, 0, 0)

	batch := Project(s, projReq(TargetQuantity, MethodReplicate, 0))

	for _, e := range batch.Entries {
		if e.Month != 3 {
			continue
		}
		if e.PlanUnits != 10 {
			t.Errorf("month 3 units = %v, want 10", e.PlanUnits)
		}
		if !almostEqual(e.PlanValue, 20000) {
			t.Errorf("month 3 value = %v, want 20000 (own price 2000)", e.PlanValue)
		}
	}
}

func TestProjectUnitPriceTarget(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 15000, 10, 0, 0)

	batch := Project(s, projReq(TargetUnitPrice, MethodReplicate, 0))

	for _, e := range batch.Entries {
		// 目标月数量为 0 且单价非 0：数量强制为 1
		if e.PlanUnits != 1 {
			t.Errorf("month %d units = %v, want 1", e.Month, e.PlanUnits)
		}
		if !almostEqual(e.PlanValue, 1500) {
			t.Errorf("month %d value = %v, want 1500", e.Month, e.PlanValue)
		}
	}
}

func TestProjectFullCollapseGrowth(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 15000, 10, 0, 0)

	// -100% 合法：后续月份全部归零
	batch := Project(s, projReq(TargetQuantity, MethodCompound, -100))

	for _, e := range batch.Entries {
		if e.PlanUnits != 0 || e.PlanValue != 0 {
			t.Errorf("month %d = (%v, %v), want (0, 0)", e.Month, e.PlanUnits, e.PlanValue)
		}
	}
}

func TestProjectEmptyBase(t *testing.T) {
	s := newTestStore()

	batch := Project(s, projReq(TargetQuantity, MethodCompound, 20))

	if len(batch.Entries) != 11 {
		t.Fatalf("got %d entries, want 11", len(batch.Entries))
	}
	for _, e := range batch.Entries {
		if e.PlanUnits != 0 || e.PlanValue != 0 {
			t.Errorf("month %d = (%v, %v), want zeros from empty base", e.Month, e.PlanUnits, e.PlanValue)
		}
	}
}

func TestProjectLeavesOtherMeasureUntouched(t *testing.T) {
	s := newTestStore()
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 1, 15000, 10, 14500, 9)
	putEntry(s, "Vezeel Sales", model.CategoryIncome, "Licencias SaaS", 5, 0, 0, 7000, 5)

	batch := Project(s, projReq(TargetQuantity, MethodReplicate, 0))
	s.ApplyBatch(batch)

	e := s.GetEntry(model.EntryKey{
		VersionID: testVersion, Company: "Vezeel Sales",
		Category: model.CategoryIncome, Concept: "Licencias SaaS", Month: 5, Year: 2026,
	})
	if e.RealValue != 7000 || e.RealUnits != 5 {
		t.Errorf("real side changed: (%v, %v)", e.RealUnits, e.RealValue)
	}
}
