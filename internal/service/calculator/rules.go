package calculator

import (
	"strconv"
	"strings"

	"vezbudget/internal/model"
)

// EditField 单元格可编辑字段：数量或单价。金额始终由二者推导
type EditField string

const (
	FieldQuantity  EditField = "quantity"
	FieldUnitPrice EditField = "unitPrice"
)

// ParseEditField 解析字段参数
func ParseEditField(s string) (EditField, bool) {
	switch EditField(s) {
	case FieldQuantity:
		return FieldQuantity, true
	case FieldUnitPrice:
		return FieldUnitPrice, true
	}
	return "", false
}

// ParseAmount 解析用户输入。空串或非数字一律按 0 处理，从不报错
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// ReconcileQuantity 数量编辑：单价在本次编辑中保持不变
func ReconcileQuantity(e model.BudgetEntry, m model.Measure, q float64) model.BudgetEntry {
	return ReconcileQuantityAt(e, m, q, e.UnitPrice(m))
}

// ReconcileQuantityAt 数量编辑，金额按指定单价重算
//（预测引擎对数量为 0 的月份回退一月单价时使用）
func ReconcileQuantityAt(e model.BudgetEntry, m model.Measure, q, price float64) model.BudgetEntry {
	e.SetUnits(m, q)
	e.SetValue(m, q*price)
	return e
}

// ReconcileUnitPrice 单价编辑：当前数量为 0 且新单价非 0 时数量强制为 1
//（约定：有价必有隐含数量 1）
func ReconcileUnitPrice(e model.BudgetEntry, m model.Measure, p float64) model.BudgetEntry {
	units := e.Units(m)
	if units == 0 && p != 0 {
		units = 1
	}
	e.SetUnits(m, units)
	e.SetValue(m, units*p)
	return e
}

// ReconcileEdit 对单元格应用一次编辑，维持 金额 = 数量 × 单价 不变式
// 数量与金额总是成对写入；只触及所编辑口径，计划与实际互不影响
func ReconcileEdit(e model.BudgetEntry, field EditField, m model.Measure, raw string) model.BudgetEntry {
	v := ParseAmount(raw)
	if field == FieldUnitPrice {
		return ReconcileUnitPrice(e, m, v)
	}
	return ReconcileQuantity(e, m, v)
}
