package calculator

import (
	"vezbudget/internal/model"
)

// ConvertToReporting 将公司本币金额折算为申报货币
// 汇率含义为 本币 / 1 申报货币单位，折算即除以汇率
// 缺失或 ≤0 的汇率视为未设置，回退为 1（金额直通），这是文档化的降级行为而非错误；
// 返回值第二项标记是否发生了回退，供调用方上报观测层
func ConvertToReporting(amount float64, company model.CompanyDetail, rate model.ExchangeRate, m model.Measure, reporting string) (float64, bool) {
	if company.Currency == reporting {
		return amount, false
	}
	r := rate.Rate(m)
	if r > 0 {
		return amount / r, false
	}
	return amount, true
}
