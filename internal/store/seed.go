package store

import (
	"fmt"

	"github.com/google/uuid"

	"vezbudget/internal/model"
)

// defaultCompanies 首次启动的默认公司清单
var defaultCompanies = []model.CompanyDetail{
	{ID: "vezeel-sales", Name: "Vezeel Sales", Currency: "USD"},
	{ID: "vezeel-tech", Name: "Vezeel Tech", Currency: "ARS"},
	{ID: "vezeel-consulting", Name: "Vezeel Consulting", Currency: "MXN"},
}

// defaultConcepts 首次启动的默认科目体系
var defaultConcepts = map[model.CategoryType][]string{
	model.CategoryIncome:        {"Servicio A (Consultoría)", "Servicio B (Implementación)", "Licencias SaaS"},
	model.CategoryDirectCosts:   {"Freelancers", "Servidores / Nube", "Licencias de Terceros"},
	model.CategoryIndirectCosts: {"Comercial", "Operativo", "Marketing", "RRHH", "Oficina"},
}

// Seeded 数据库是否已有版本数据
func (s *Store) Seeded() (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM budget_versions").Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count versions: %w", err)
	}
	return n > 0, nil
}

// SeedDefaults 向空库写入默认公司、科目、全量指派、两个版本及示例数据
func (s *Store) SeedDefaults(year int) error {
	for _, c := range defaultCompanies {
		if err := s.SaveCompany(c); err != nil {
			return err
		}
	}

	for _, cat := range model.CategoryTypes {
		for i, concept := range defaultConcepts[cat] {
			if err := s.SaveConcept(cat, concept, i); err != nil {
				return err
			}
			// 新建概念默认指派给全部公司
			for _, c := range defaultCompanies {
				if err := s.SaveAssignment(c.Name, cat, concept); err != nil {
					return err
				}
			}
		}
	}

	baseID := uuid.NewString()
	if _, err := s.db.Exec(`
		INSERT INTO budget_versions (id, name, description, is_active, created_at)
		VALUES (?, ?, ?, 1, ?)
	`, baseID, fmt.Sprintf("Presupuesto Base %d", year),
		"Versión aprobada por directorio", fmt.Sprintf("%d-12-15", year-1)); err != nil {
		return fmt.Errorf("failed to seed base version: %w", err)
	}
	if _, err := s.db.Exec(`
		INSERT INTO budget_versions (id, name, description, is_active, created_at)
		VALUES (?, ?, ?, 0, ?)
	`, uuid.NewString(), "Escenario Optimista",
		"Proyección con crecimiento del 20%", fmt.Sprintf("%d-01-10", year)); err != nil {
		return fmt.Errorf("failed to seed optimistic version: %w", err)
	}

	return s.seedSampleData(baseID, year)
}

// seedSampleData 写入与线上初始数据一致的示例条目与汇率
func (s *Store) seedSampleData(versionID string, year int) error {
	var batch model.EntryBatch
	for month := 1; month <= 3; month++ {
		salesEntry := model.BudgetEntry{
			Month:     month,
			Year:      year,
			Company:   "Vezeel Sales",
			Category:  model.CategoryIncome,
			Concept:   "Servicio A (Consultoría)",
			PlanValue: 15000,
			PlanUnits: 10,
			VersionID: versionID,
		}
		techEntry := model.BudgetEntry{
			Month:     month,
			Year:      year,
			Company:   "Vezeel Tech",
			Category:  model.CategoryIncome,
			Concept:   "Licencias SaaS",
			PlanValue: 5000000, // 本币 ARS
			PlanUnits: 50,
			VersionID: versionID,
		}
		if month == 1 {
			salesEntry.RealValue = 14500
			salesEntry.RealUnits = 9
			techEntry.RealValue = 5200000
			techEntry.RealUnits = 52
		}
		batch.Entries = append(batch.Entries, salesEntry, techEntry)
	}
	if err := s.SaveBatch(batch); err != nil {
		return err
	}

	for month := 1; month <= 12; month++ {
		techRate := model.ExchangeRate{
			Company:   "Vezeel Tech",
			Month:     month,
			Year:      year,
			VersionID: versionID,
			PlanRate:  1000 + float64(month)*20, // 预估逐月小幅贬值
		}
		consultingRate := model.ExchangeRate{
			Company:   "Vezeel Consulting",
			Month:     month,
			Year:      year,
			VersionID: versionID,
			PlanRate:  18,
		}
		if month == 1 {
			techRate.RealRate = 1050
			consultingRate.RealRate = 17.5
		}
		if err := s.SaveRate(techRate); err != nil {
			return err
		}
		if err := s.SaveRate(consultingRate); err != nil {
			return err
		}
	}
	return nil
}
