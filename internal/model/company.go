package model

const (
	// ConsolidatedID 合并视图在 API 边界使用的标识
	ConsolidatedID = "CONSOLIDATED_VIEW"
	// ConsolidatedName 合并视图显示名
	ConsolidatedName = "GRUPO VEZEEL (Consolidado USD)"
)

// CompanyDetail 公司配置：名称是条目/汇率关联公司的业务键
type CompanyDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// CompanyRef 公司引用：真实公司或合并视图
// 合并视图是虚拟聚合体，只读且永不落库；用类型区分而非哨兵字符串比较，
// 使只读约束在分发层面强制成立
type CompanyRef struct {
	name         string
	consolidated bool
}

// RealCompany 指向一家真实公司
func RealCompany(name string) CompanyRef {
	return CompanyRef{name: name}
}

// ConsolidatedView 指向合并视图
func ConsolidatedView() CompanyRef {
	return CompanyRef{consolidated: true}
}

// ParseCompanyRef 从 API 参数解析公司引用
func ParseCompanyRef(s string) CompanyRef {
	if s == ConsolidatedID {
		return ConsolidatedView()
	}
	return RealCompany(s)
}

// IsConsolidated 是否为合并视图
func (r CompanyRef) IsConsolidated() bool {
	return r.consolidated
}

// Name 公司名；合并视图返回显示名
func (r CompanyRef) Name() string {
	if r.consolidated {
		return ConsolidatedName
	}
	return r.name
}
