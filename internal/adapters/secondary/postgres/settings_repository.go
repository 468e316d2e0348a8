package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

type SettingsRepository struct {
	pool *pgxpool.Pool
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(pool *pgxpool.Pool) ports.SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) List(ctx context.Context) ([]domain.Setting, error) {
	const query = `
SELECT id, key, value, updated_at
FROM settings
ORDER BY key ASC
`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var setting domain.Setting
		if err := rows.Scan(&setting.ID, &setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO settings (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
`

	db := GetDBTX(ctx, r.pool)
	_, err := db.Exec(ctx, query, key, value)
	return err
}
