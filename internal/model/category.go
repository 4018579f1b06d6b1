package model

// CategoryType 科目大类。取值沿用线上数据既有格式
type CategoryType string

const (
	CategoryIncome        CategoryType = "Ingresos"          // 收入
	CategoryDirectCosts   CategoryType = "Costos Directos"   // 直接成本
	CategoryIndirectCosts CategoryType = "Costos Indirectos" // 间接成本
)

// CategoryTypes 固定的三个科目大类，按展示顺序
var CategoryTypes = []CategoryType{
	CategoryIncome,
	CategoryDirectCosts,
	CategoryIndirectCosts,
}

// ValidCategory 是否为合法科目大类
func ValidCategory(c CategoryType) bool {
	for _, t := range CategoryTypes {
		if t == c {
			return true
		}
	}
	return false
}

// IsIncome 是否为收入类（其余大类汇总时计为支出）
func (c CategoryType) IsIncome() bool {
	return c == CategoryIncome
}

// AppConfig 公司清单与科目/概念分类体系，引擎在单次计算内视为只读输入
type AppConfig struct {
	Companies  []CompanyDetail           `json:"companies"`
	Categories map[CategoryType][]string `json:"categories"`
}

// Company 按名称查找公司配置
func (c *AppConfig) Company(name string) (CompanyDetail, bool) {
	for _, cd := range c.Companies {
		if cd.Name == name {
			return cd, true
		}
	}
	return CompanyDetail{}, false
}

// HasConcept 概念是否存在于指定大类
func (c *AppConfig) HasConcept(cat CategoryType, concept string) bool {
	for _, s := range c.Categories[cat] {
		if s == concept {
			return true
		}
	}
	return false
}

// AssignmentKey 概念指派关系主键：公司 × 大类 × 概念
type AssignmentKey struct {
	Company  string
	Category CategoryType
	Concept  string
}

// AssignmentSet 公司与概念的指派关系
// 未指派的概念在该公司的表格中隐藏、不计入该公司合计，
// 但只要在其他公司有指派，仍参与合并汇总
type AssignmentSet struct {
	keys map[AssignmentKey]struct{}
}

// NewAssignmentSet 创建空指派关系
func NewAssignmentSet() *AssignmentSet {
	return &AssignmentSet{keys: make(map[AssignmentKey]struct{})}
}

// Assign 建立指派
func (a *AssignmentSet) Assign(company string, cat CategoryType, concept string) {
	a.keys[AssignmentKey{Company: company, Category: cat, Concept: concept}] = struct{}{}
}

// Unassign 解除指派
func (a *AssignmentSet) Unassign(company string, cat CategoryType, concept string) {
	delete(a.keys, AssignmentKey{Company: company, Category: cat, Concept: concept})
}

// IsAssigned 概念是否指派给该公司
func (a *AssignmentSet) IsAssigned(company string, cat CategoryType, concept string) bool {
	_, ok := a.keys[AssignmentKey{Company: company, Category: cat, Concept: concept}]
	return ok
}

// Keys 导出全部指派关系（副本）
func (a *AssignmentSet) Keys() []AssignmentKey {
	out := make([]AssignmentKey, 0, len(a.keys))
	for k := range a.keys {
		out = append(out, k)
	}
	return out
}

// Clone 深拷贝
func (a *AssignmentSet) Clone() *AssignmentSet {
	c := NewAssignmentSet()
	for k := range a.keys {
		c.keys[k] = struct{}{}
	}
	return c
}

// RenameCompany 公司改名时同步指派关系
func (a *AssignmentSet) RenameCompany(oldName, newName string) {
	for k := range a.keys {
		if k.Company == oldName {
			delete(a.keys, k)
			k.Company = newName
			a.keys[k] = struct{}{}
		}
	}
}

// RenameConcept 概念改名时同步指派关系
func (a *AssignmentSet) RenameConcept(cat CategoryType, oldName, newName string) {
	for k := range a.keys {
		if k.Category == cat && k.Concept == oldName {
			delete(a.keys, k)
			k.Concept = newName
			a.keys[k] = struct{}{}
		}
	}
}
