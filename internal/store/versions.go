package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"vezbudget/internal/model"
)

// ListVersions 列出全部预算版本
func (s *Store) ListVersions() ([]model.BudgetVersion, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, is_active, created_at
		FROM budget_versions ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query versions: %w", err)
	}
	defer rows.Close()

	var results []model.BudgetVersion
	for rows.Next() {
		var v model.BudgetVersion
		var active int
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &active, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version row: %w", err)
		}
		v.IsActive = active == 1
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// GetVersion 获取单个版本
func (s *Store) GetVersion(id string) (*model.BudgetVersion, error) {
	var v model.BudgetVersion
	var active int
	err := s.db.QueryRow(`
		SELECT id, name, description, is_active, created_at
		FROM budget_versions WHERE id = ?
	`, id).Scan(&v.ID, &v.Name, &v.Description, &active, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("version not found: %w", err)
	}
	v.IsActive = active == 1
	return &v, nil
}

// CreateVersion 创建空白版本
func (s *Store) CreateVersion(name, description string) (*model.BudgetVersion, error) {
	v := model.BudgetVersion{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().Format("2006-01-02"),
	}
	_, err := s.db.Exec(`
		INSERT INTO budget_versions (id, name, description, is_active, created_at)
		VALUES (?, ?, ?, 0, ?)
	`, v.ID, v.Name, v.Description, v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}
	return &v, nil
}

// SetActiveVersion 切换活动版本
func (s *Store) SetActiveVersion(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE budget_versions SET is_active = 0"); err != nil {
		return fmt.Errorf("failed to deactivate versions: %w", err)
	}
	res, err := tx.Exec("UPDATE budget_versions SET is_active = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to activate version: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("version not found: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CloneVersion 克隆版本：在单个事务内复制源版本的全部条目与汇率到新版本
// 新记录使用新的行 ID，业务主键中的版本号替换为新版本
func (s *Store) CloneVersion(sourceID, name, description string) (*model.BudgetVersion, error) {
	if _, err := s.GetVersion(sourceID); err != nil {
		return nil, err
	}

	v := model.BudgetVersion{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().Format("2006-01-02"),
	}

	entries, err := s.GetEntriesByVersion(sourceID)
	if err != nil {
		return nil, err
	}
	rates, err := s.GetRatesByVersion(sourceID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO budget_versions (id, name, description, is_active, created_at)
		VALUES (?, ?, ?, 0, ?)
	`, v.ID, v.Name, v.Description, v.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert cloned version: %w", err)
	}

	entryStmt, err := tx.Prepare(entryUpsertSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer entryStmt.Close()

	for _, e := range entries {
		_, err := entryStmt.Exec(
			uuid.NewString(), v.ID, e.Company, string(e.Category), e.Concept, e.Month, e.Year,
			e.PlanValue, e.PlanUnits, e.RealValue, e.RealUnits,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to clone entry: %w", err)
		}
	}

	rateStmt, err := tx.Prepare(rateUpsertSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer rateStmt.Close()

	for _, r := range rates {
		_, err := rateStmt.Exec(
			uuid.NewString(), v.ID, r.Company, r.Month, r.Year, r.PlanRate, r.RealRate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to clone rate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &v, nil
}
