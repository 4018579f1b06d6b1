package calculator

import (
	"math"

	"vezbudget/internal/model"
	"vezbudget/internal/service/store"
)

// ProjectionMethod 预测方式
type ProjectionMethod string

const (
	MethodReplicate ProjectionMethod = "replicate" // 复制一月值
	MethodCompound  ProjectionMethod = "compound"  // 按月复利增长
)

// ParseProjectionMethod 解析预测方式参数
func ParseProjectionMethod(s string) (ProjectionMethod, bool) {
	switch ProjectionMethod(s) {
	case MethodReplicate:
		return MethodReplicate, true
	case MethodCompound:
		return MethodCompound, true
	}
	return "", false
}

// TargetVariable 预测目标变量
type TargetVariable string

const (
	TargetQuantity  TargetVariable = "quantity"
	TargetUnitPrice TargetVariable = "unitPrice"
)

// ParseTargetVariable 解析目标变量参数
func ParseTargetVariable(s string) (TargetVariable, bool) {
	switch TargetVariable(s) {
	case TargetQuantity:
		return TargetQuantity, true
	case TargetUnitPrice:
		return TargetUnitPrice, true
	}
	return "", false
}

// ProjectionRequest 一次预测请求：对一个 (公司, 概念, 目标变量) 组合，
// 以 1 月为基期向 2..12 月批量填充
type ProjectionRequest struct {
	VersionID string
	Company   string
	Category  model.CategoryType
	Concept   string
	Year      int
	Measure   model.Measure
	Target    TargetVariable
	Method    ProjectionMethod
	GrowthPct float64 // 月增长率百分比，仅 compound 使用；-100 合法，后续月份全部归零
}

// Project 生成 2..12 月的预测条目批次
// compound 每个月都从固定的一月基期复利：base × (1+r/100)^(i-1)，
// 不从上月已写回（可能被再次编辑过）的值顺推，避免反复操作后漂移
// 输出为单个批次整体交给存储应用；批内 11 条与计算时点的基期互相一致
func Project(s *store.MemoryStore, req ProjectionRequest) model.EntryBatch {
	baseKey := model.EntryKey{
		VersionID: req.VersionID,
		Company:   req.Company,
		Category:  req.Category,
		Concept:   req.Concept,
		Month:     1,
		Year:      req.Year,
	}
	base := s.GetEntry(baseKey)

	var baseValue float64
	if req.Target == TargetQuantity {
		baseValue = base.Units(req.Measure)
	} else {
		baseValue = base.UnitPrice(req.Measure)
	}
	janPrice := base.UnitPrice(req.Measure)

	batch := model.EntryBatch{Entries: make([]model.BudgetEntry, 0, 11)}
	for month := 2; month <= 12; month++ {
		newValue := baseValue
		if req.Method == MethodCompound {
			newValue = baseValue * math.Pow(1+req.GrowthPct/100, float64(month-1))
		}

		key := baseKey
		key.Month = month
		e := s.GetEntry(key)

		if req.Target == TargetQuantity {
			price := e.UnitPrice(req.Measure)
			if e.Units(req.Measure) == 0 {
				// 当月数量为 0 时单价无从推导，回退一月单价
				price = janPrice
			}
			e = ReconcileQuantityAt(e, req.Measure, newValue, price)
		} else {
			e = ReconcileUnitPrice(e, req.Measure, newValue)
		}

		batch.Entries = append(batch.Entries, e)
	}
	return batch
}
