package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

type PrizeRepository struct {
	pool *pgxpool.Pool
}

var _ ports.PrizeRepository = (*PrizeRepository)(nil)

func NewPrizeRepository(pool *pgxpool.Pool) ports.PrizeRepository {
	return &PrizeRepository{pool: pool}
}

func (r *PrizeRepository) Create(ctx context.Context, prize *domain.Prize) (*domain.Prize, error) {
	const query = `
INSERT INTO prizes (name, description, kind, probability, icon, active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

	db := GetDBTX(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		prize.Name,
		prize.Description,
		string(prize.Kind),
		prize.Probability,
		prize.Icon,
		prize.Active,
	).Scan(&prize.ID)
	if err != nil {
		return nil, err
	}

	return prize, nil
}

func (r *PrizeRepository) GetByID(ctx context.Context, id int64) (*domain.Prize, error) {
	const query = `
SELECT id, name, description, kind, probability, icon, active
FROM prizes
WHERE id = $1
`

	db := GetDBTX(ctx, r.pool)
	prize, err := scanPrize(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPrizeNotFound
		}
		return nil, err
	}
	return prize, nil
}

func (r *PrizeRepository) Update(ctx context.Context, prize *domain.Prize) (*domain.Prize, error) {
	const query = `
UPDATE prizes
SET name = $2, description = $3, kind = $4, probability = $5, icon = $6, active = $7
WHERE id = $1
`

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query,
		prize.ID,
		prize.Name,
		prize.Description,
		string(prize.Kind),
		prize.Probability,
		prize.Icon,
		prize.Active,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrPrizeNotFound
	}

	return prize, nil
}

func (r *PrizeRepository) List(ctx context.Context) ([]*domain.Prize, error) {
	const query = `
SELECT id, name, description, kind, probability, icon, active
FROM prizes
ORDER BY id ASC
`

	return r.queryPrizes(ctx, query)
}

func (r *PrizeRepository) ListActive(ctx context.Context) ([]*domain.Prize, error) {
	const query = `
SELECT id, name, description, kind, probability, icon, active
FROM prizes
WHERE active = TRUE
ORDER BY id ASC
`

	return r.queryPrizes(ctx, query)
}

func (r *PrizeRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM prizes WHERE id = $1`

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPrizeNotFound
	}
	return nil
}

func (r *PrizeRepository) queryPrizes(ctx context.Context, query string, args ...any) ([]*domain.Prize, error) {
	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prizes []*domain.Prize
	for rows.Next() {
		prize, err := scanPrize(rows)
		if err != nil {
			return nil, err
		}
		prizes = append(prizes, prize)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prizes, nil
}

func scanPrize(row pgx.Row) (*domain.Prize, error) {
	var (
		p    domain.Prize
		kind string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &kind, &p.Probability, &p.Icon, &p.Active)
	if err != nil {
		return nil, err
	}
	p.Kind = domain.PrizeKind(kind)
	return &p, nil
}
