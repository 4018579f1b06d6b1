package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vezbudget/internal/model"
)

const entryUpsertSQL = `
	INSERT INTO budget_entries (
		id, version_id, company, category, concept, month, year,
		plan_value, plan_units, real_value, real_units
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (version_id, company, category, concept, month, year) DO UPDATE SET
		plan_value = excluded.plan_value,
		plan_units = excluded.plan_units,
		real_value = excluded.real_value,
		real_units = excluded.real_units,
		updated_at = datetime('now')
`

// SaveEntry 按业务主键保存条目；已存在则更新，重复保存不产生重复记录
func (s *Store) SaveEntry(e model.BudgetEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.Exec(entryUpsertSQL,
		e.ID, e.VersionID, e.Company, string(e.Category), e.Concept, e.Month, e.Year,
		e.PlanValue, e.PlanUnits, e.RealValue, e.RealUnits,
	)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

// SaveBatch 在单个事务内保存一批条目（预测引擎输出）
func (s *Store) SaveBatch(b model.EntryBatch) error {
	if len(b.Entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(entryUpsertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range b.Entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		_, err := stmt.Exec(
			e.ID, e.VersionID, e.Company, string(e.Category), e.Concept, e.Month, e.Year,
			e.PlanValue, e.PlanUnits, e.RealValue, e.RealUnits,
		)
		if err != nil {
			return fmt.Errorf("failed to save batch entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetEntriesByVersion 加载某版本的全部条目
func (s *Store) GetEntriesByVersion(versionID string) ([]model.BudgetEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, version_id, company, category, concept, month, year,
		       plan_value, plan_units, real_value, real_units
		FROM budget_entries WHERE version_id = ?
		ORDER BY company, category, concept, year, month
	`, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	return scanEntryRows(rows)
}

// DeleteEntriesByCompany 批量删除某公司的全部条目与汇率
func (s *Store) DeleteEntriesByCompany(name string) error {
	if _, err := s.db.Exec("DELETE FROM budget_entries WHERE company = ?", name); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM exchange_rates WHERE company = ?", name); err != nil {
		return fmt.Errorf("failed to delete rates: %w", err)
	}
	return nil
}

// DeleteEntriesByConcept 批量删除某概念的全部条目
func (s *Store) DeleteEntriesByConcept(cat model.CategoryType, name string) error {
	_, err := s.db.Exec("DELETE FROM budget_entries WHERE category = ? AND concept = ?",
		string(cat), name)
	if err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	return nil
}

// RenameCompanyData 公司改名时级联改写条目与汇率
func (s *Store) RenameCompanyData(oldName, newName string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		"UPDATE budget_entries SET company = ? WHERE company = ?",
		"UPDATE exchange_rates SET company = ? WHERE company = ?",
		"UPDATE concept_assignments SET company = ? WHERE company = ?",
	}
	for _, q := range stmts {
		if _, err := tx.Exec(q, newName, oldName); err != nil {
			return fmt.Errorf("failed to rename company: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RenameConceptData 概念改名时级联改写条目与指派
func (s *Store) RenameConceptData(cat model.CategoryType, oldName, newName string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE budget_entries SET concept = ? WHERE category = ? AND concept = ?",
		newName, string(cat), oldName); err != nil {
		return fmt.Errorf("failed to rename concept entries: %w", err)
	}
	if _, err := tx.Exec("UPDATE concept_assignments SET concept = ? WHERE category = ? AND concept = ?",
		newName, string(cat), oldName); err != nil {
		return fmt.Errorf("failed to rename concept assignments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanEntryRows(rows *sql.Rows) ([]model.BudgetEntry, error) {
	var results []model.BudgetEntry

	for rows.Next() {
		var e model.BudgetEntry
		var category string
		err := rows.Scan(
			&e.ID, &e.VersionID, &e.Company, &category, &e.Concept, &e.Month, &e.Year,
			&e.PlanValue, &e.PlanUnits, &e.RealValue, &e.RealUnits,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		e.Category = model.CategoryType(category)
		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
