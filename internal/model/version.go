package model

// BudgetVersion 预算版本（情景）：一份可独立编辑的全量数据副本
type BudgetVersion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
}
