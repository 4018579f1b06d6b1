package store

import (
	"fmt"

	"vezbudget/internal/model"
)

// LoadCatalog 加载公司清单、科目体系与指派关系
func (s *Store) LoadCatalog() (model.AppConfig, *model.AssignmentSet, error) {
	cfg := model.AppConfig{Categories: make(map[model.CategoryType][]string)}

	rows, err := s.db.Query("SELECT id, name, currency FROM companies ORDER BY name")
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c model.CompanyDetail
		if err := rows.Scan(&c.ID, &c.Name, &c.Currency); err != nil {
			return cfg, nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		cfg.Companies = append(cfg.Companies, c)
	}
	if err := rows.Err(); err != nil {
		return cfg, nil, fmt.Errorf("rows error: %w", err)
	}

	crows, err := s.db.Query("SELECT category, name FROM concepts ORDER BY category, position")
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to query concepts: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var category, name string
		if err := crows.Scan(&category, &name); err != nil {
			return cfg, nil, fmt.Errorf("failed to scan concept row: %w", err)
		}
		cat := model.CategoryType(category)
		cfg.Categories[cat] = append(cfg.Categories[cat], name)
	}
	if err := crows.Err(); err != nil {
		return cfg, nil, fmt.Errorf("rows error: %w", err)
	}

	assigns := model.NewAssignmentSet()
	arows, err := s.db.Query("SELECT company, category, concept FROM concept_assignments")
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer arows.Close()
	for arows.Next() {
		var company, category, concept string
		if err := arows.Scan(&company, &category, &concept); err != nil {
			return cfg, nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assigns.Assign(company, model.CategoryType(category), concept)
	}
	if err := arows.Err(); err != nil {
		return cfg, nil, fmt.Errorf("rows error: %w", err)
	}

	return cfg, assigns, nil
}

// SaveCompany 新增或更新公司
func (s *Store) SaveCompany(c model.CompanyDetail) error {
	_, err := s.db.Exec(`
		INSERT INTO companies (id, name, currency) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, currency = excluded.currency
	`, c.ID, c.Name, c.Currency)
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

// DeleteCompany 删除公司
func (s *Store) DeleteCompany(name string) error {
	if _, err := s.db.Exec("DELETE FROM companies WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM concept_assignments WHERE company = ?", name); err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}
	return nil
}

// SaveConcept 新增概念
func (s *Store) SaveConcept(cat model.CategoryType, name string, position int) error {
	_, err := s.db.Exec(`
		INSERT INTO concepts (category, name, position) VALUES (?, ?, ?)
		ON CONFLICT (category, name) DO UPDATE SET position = excluded.position
	`, string(cat), name, position)
	if err != nil {
		return fmt.Errorf("failed to save concept: %w", err)
	}
	return nil
}

// DeleteConcept 删除概念
func (s *Store) DeleteConcept(cat model.CategoryType, name string) error {
	if _, err := s.db.Exec("DELETE FROM concepts WHERE category = ? AND name = ?",
		string(cat), name); err != nil {
		return fmt.Errorf("failed to delete concept: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM concept_assignments WHERE category = ? AND concept = ?",
		string(cat), name); err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}
	return nil
}

// RenameConceptCatalog 概念改名（科目表自身）
func (s *Store) RenameConceptCatalog(cat model.CategoryType, oldName, newName string) error {
	_, err := s.db.Exec("UPDATE concepts SET name = ? WHERE category = ? AND name = ?",
		newName, string(cat), oldName)
	if err != nil {
		return fmt.Errorf("failed to rename concept: %w", err)
	}
	return nil
}

// SaveAssignment 建立指派
func (s *Store) SaveAssignment(company string, cat model.CategoryType, concept string) error {
	_, err := s.db.Exec(`
		INSERT INTO concept_assignments (company, category, concept) VALUES (?, ?, ?)
		ON CONFLICT (company, category, concept) DO NOTHING
	`, company, string(cat), concept)
	if err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	return nil
}

// DeleteAssignment 解除指派
func (s *Store) DeleteAssignment(company string, cat model.CategoryType, concept string) error {
	_, err := s.db.Exec(`
		DELETE FROM concept_assignments WHERE company = ? AND category = ? AND concept = ?
	`, company, string(cat), concept)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}
