package model

// RateKey 汇率业务主键
type RateKey struct {
	VersionID string
	Company   string
	Month     int
	Year      int
}

// ExchangeRate 月度汇率：1 单位申报货币折合多少公司本币
// 0 或缺失表示"未设置"，消费方必须回退为 1，不得按字面 0 参与除法
type ExchangeRate struct {
	ID        string  `json:"id"`
	Company   string  `json:"company"`
	Month     int     `json:"month"`
	Year      int     `json:"year"`
	VersionID string  `json:"versionId"`
	PlanRate  float64 `json:"planRate"`
	RealRate  float64 `json:"realRate"`
}

// Key 返回业务主键
func (r *ExchangeRate) Key() RateKey {
	return RateKey{
		VersionID: r.VersionID,
		Company:   r.Company,
		Month:     r.Month,
		Year:      r.Year,
	}
}

// Rate 取指定口径的汇率
func (r *ExchangeRate) Rate(m Measure) float64 {
	if m == MeasureReal {
		return r.RealRate
	}
	return r.PlanRate
}

// SetRate 写指定口径的汇率
func (r *ExchangeRate) SetRate(m Measure, v float64) {
	if m == MeasureReal {
		r.RealRate = v
		return
	}
	r.PlanRate = v
}
