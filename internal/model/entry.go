package model

// Measure 数据口径：计划值或实际值
type Measure string

const (
	MeasurePlan Measure = "plan" // 计划（预算）
	MeasureReal Measure = "real" // 实际（执行）
)

// ParseMeasure 解析口径参数
func ParseMeasure(s string) (Measure, bool) {
	switch Measure(s) {
	case MeasurePlan:
		return MeasurePlan, true
	case MeasureReal:
		return MeasureReal, true
	}
	return "", false
}

// EntryKey 预算条目业务主键
// 持久化身份以业务主键为准，行 ID 不保证跨加载稳定
type EntryKey struct {
	VersionID string
	Company   string
	Category  CategoryType
	Concept   string
	Month     int
	Year      int
}

// BudgetEntry 预算条目：一个 (公司, 科目, 概念, 月份, 版本) 的单元格组
// 金额为公司本币。单价不落库，始终由 金额 / 数量 推导
type BudgetEntry struct {
	ID        string       `json:"id"`
	Month     int          `json:"month"` // 1-12
	Year      int          `json:"year"`
	Company   string       `json:"company"`
	Category  CategoryType `json:"category"`
	Concept   string       `json:"subCategory"`
	PlanValue float64      `json:"planValue"` // 计划金额
	PlanUnits float64      `json:"planUnits"` // 计划数量
	RealValue float64      `json:"realValue"` // 实际金额
	RealUnits float64      `json:"realUnits"` // 实际数量
	VersionID string       `json:"versionId"`
}

// Key 返回业务主键
func (e *BudgetEntry) Key() EntryKey {
	return EntryKey{
		VersionID: e.VersionID,
		Company:   e.Company,
		Category:  e.Category,
		Concept:   e.Concept,
		Month:     e.Month,
		Year:      e.Year,
	}
}

// Units 取指定口径的数量
func (e *BudgetEntry) Units(m Measure) float64 {
	if m == MeasureReal {
		return e.RealUnits
	}
	return e.PlanUnits
}

// Value 取指定口径的金额
func (e *BudgetEntry) Value(m Measure) float64 {
	if m == MeasureReal {
		return e.RealValue
	}
	return e.PlanValue
}

// SetUnits 写指定口径的数量
func (e *BudgetEntry) SetUnits(m Measure, v float64) {
	if m == MeasureReal {
		e.RealUnits = v
		return
	}
	e.PlanUnits = v
}

// SetValue 写指定口径的金额
func (e *BudgetEntry) SetValue(m Measure, v float64) {
	if m == MeasureReal {
		e.RealValue = v
		return
	}
	e.PlanValue = v
}

// UnitPrice 推导单价。数量为 0 时约定为 0，不是异常
func (e *BudgetEntry) UnitPrice(m Measure) float64 {
	units := e.Units(m)
	if units == 0 {
		return 0
	}
	return e.Value(m) / units
}

// EntryBatch 一次批量更新产出的条目集合（如预测引擎输出）
// 作为整体交给存储层应用，由存储层决定事务语义
type EntryBatch struct {
	Entries []BudgetEntry `json:"entries"`
}
