package calculator

import (
	"testing"

	"vezbudget/internal/model"
)

func TestConvertSameCurrencyPassthrough(t *testing.T) {
	usd := model.CompanyDetail{Name: "Vezeel Sales", Currency: "USD"}
	got, fallback := ConvertToReporting(15000, usd, model.ExchangeRate{}, model.MeasurePlan, "USD")
	if got != 15000 || fallback {
		t.Errorf("convert = (%v, %v), want (15000, false)", got, fallback)
	}
}

func TestConvertDividesByRate(t *testing.T) {
	ars := model.CompanyDetail{Name: "Vezeel Tech", Currency: "ARS"}
	rate := model.ExchangeRate{PlanRate: 1000, RealRate: 1050}

	plan, fallback := ConvertToReporting(5000000, ars, rate, model.MeasurePlan, "USD")
	if plan != 5000 || fallback {
		t.Errorf("plan convert = (%v, %v), want (5000, false)", plan, fallback)
	}

	real, fallback := ConvertToReporting(5250000, ars, rate, model.MeasureReal, "USD")
	if real != 5000 || fallback {
		t.Errorf("real convert = (%v, %v), want (5000, false)", real, fallback)
	}
}

func TestConvertMissingRateFallsBack(t *testing.T) {
	mxn := model.CompanyDetail{Name: "Vezeel Consulting", Currency: "MXN"}

	got, fallback := ConvertToReporting(900, mxn, model.ExchangeRate{}, model.MeasurePlan, "USD")
	if got != 900 {
		t.Errorf("fallback amount = %v, want pass-through 900", got)
	}
	if !fallback {
		t.Error("missing rate should be flagged as fallback")
	}

	// 负数汇率同样视为未设置
	bad := model.ExchangeRate{PlanRate: -5}
	if _, fb := ConvertToReporting(900, mxn, bad, model.MeasurePlan, "USD"); !fb {
		t.Error("negative rate should be flagged as fallback")
	}
}
