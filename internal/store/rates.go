package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vezbudget/internal/model"
)

const rateUpsertSQL = `
	INSERT INTO exchange_rates (
		id, version_id, company, month, year, plan_rate, real_rate
	) VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (version_id, company, month, year) DO UPDATE SET
		plan_rate = excluded.plan_rate,
		real_rate = excluded.real_rate,
		updated_at = datetime('now')
`

// SaveRate 按业务主键保存汇率；已存在则更新
func (s *Store) SaveRate(r model.ExchangeRate) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(rateUpsertSQL,
		r.ID, r.VersionID, r.Company, r.Month, r.Year, r.PlanRate, r.RealRate,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate: %w", err)
	}
	return nil
}

// GetRatesByVersion 加载某版本的全部汇率
func (s *Store) GetRatesByVersion(versionID string) ([]model.ExchangeRate, error) {
	rows, err := s.db.Query(`
		SELECT id, version_id, company, month, year, plan_rate, real_rate
		FROM exchange_rates WHERE version_id = ?
		ORDER BY company, year, month
	`, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	return scanRateRows(rows)
}

func scanRateRows(rows *sql.Rows) ([]model.ExchangeRate, error) {
	var results []model.ExchangeRate

	for rows.Next() {
		var r model.ExchangeRate
		err := rows.Scan(&r.ID, &r.VersionID, &r.Company, &r.Month, &r.Year, &r.PlanRate, &r.RealRate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
