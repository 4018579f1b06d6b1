package calculator

import (
	"testing"

	"vezbudget/internal/model"
)

func TestReconcileQuantityKeepsPrice(t *testing.T) {
	e := model.BudgetEntry{PlanValue: 15000, PlanUnits: 10} // 单价 1500

	e = ReconcileQuantity(e, model.MeasurePlan, 12)

	if e.PlanUnits != 12 {
		t.Errorf("units = %v, want 12", e.PlanUnits)
	}
	if e.PlanValue != 18000 {
		t.Errorf("value = %v, want 18000", e.PlanValue)
	}
}

func TestReconcileQuantityZeroPrice(t *testing.T) {
	// 原数量为 0：单价推导为 0，新金额随之为 0
	e := model.BudgetEntry{PlanValue: 0, PlanUnits: 0}

	e = ReconcileQuantity(e, model.MeasurePlan, 5)

	if e.PlanUnits != 5 || e.PlanValue != 0 {
		t.Errorf("entry = (%v, %v), want (5, 0)", e.PlanUnits, e.PlanValue)
	}
}

func TestReconcileUnitPriceForcesUnitOne(t *testing.T) {
	e := model.BudgetEntry{RealValue: 0, RealUnits: 0}

	e = ReconcileUnitPrice(e, model.MeasureReal, 250)

	if e.RealUnits != 1 {
		t.Errorf("units = %v, want 1", e.RealUnits)
	}
	if e.RealValue != 250 {
		t.Errorf("value = %v, want 250", e.RealValue)
	}
}

func TestReconcileUnitPriceZeroKeepsZeroUnits(t *testing.T) {
	e := model.BudgetEntry{PlanValue: 0, PlanUnits: 0}

	e = ReconcileUnitPrice(e, model.MeasurePlan, 0)

	if e.PlanUnits != 0 || e.PlanValue != 0 {
		t.Errorf("entry = (%v, %v), want (0, 0)", e.PlanUnits, e.PlanValue)
	}
}

func TestReconcileUnitPriceExistingUnits(t *testing.T) {
	e := model.BudgetEntry{PlanValue: 15000, PlanUnits: 10}

	e = ReconcileUnitPrice(e, model.MeasurePlan, 2000)

	if e.PlanUnits != 10 {
		t.Errorf("units = %v, want 10", e.PlanUnits)
	}
	if e.PlanValue != 20000 {
		t.Errorf("value = %v, want 20000", e.PlanValue)
	}
}

func TestReconcileEditDoesNotTouchOtherMeasure(t *testing.T) {
	e := model.BudgetEntry{PlanValue: 15000, PlanUnits: 10, RealValue: 14500, RealUnits: 9}

	e = ReconcileEdit(e, FieldQuantity, model.MeasurePlan, "20")

	if e.RealValue != 14500 || e.RealUnits != 9 {
		t.Errorf("real side changed: (%v, %v)", e.RealUnits, e.RealValue)
	}
}

func TestParseAmountForgiving(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"12.5", 12.5},
		{" 42 ", 42},
		{"", 0},
		{"abc", 0},
		{"-3", -3},
	}
	for _, c := range cases {
		if got := ParseAmount(c.raw); got != c.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}
