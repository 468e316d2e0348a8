package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

type HistoryRepository struct {
	pool *pgxpool.Pool
}

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(pool *pgxpool.Pool) ports.HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) Create(ctx context.Context, entry *domain.HistoryEntry) (int64, error) {
	const query = `
INSERT INTO spin_history (name, email, whatsapp, prize_id, prize_name, won, spin_kind, drawn_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`

	var prizeID *int64
	if entry.PrizeID != 0 {
		prizeID = &entry.PrizeID
	}

	db := GetDBTX(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		entry.Name,
		entry.Email,
		entry.WhatsApp,
		prizeID,
		entry.PrizeName,
		entry.Won,
		string(entry.SpinKind),
		entry.DrawnAt,
	).Scan(&entry.ID)
	if err != nil {
		return 0, err
	}

	return entry.ID, nil
}

func (r *HistoryRepository) List(ctx context.Context, params ports.HistoryListParams) ([]*domain.HistoryEntry, error) {
	query := `
SELECT id, name, email, whatsapp, COALESCE(prize_id, 0), prize_name, won, spin_kind, drawn_at
FROM spin_history
`
	args := []any{}
	if params.WonOnly {
		query += "WHERE won = TRUE\n"
	}
	query += "ORDER BY drawn_at DESC\n"
	if params.Limit > 0 {
		query += "LIMIT $1"
		args = append(args, params.Limit)
	}

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var (
			entry domain.HistoryEntry
			kind  string
		)
		err := rows.Scan(
			&entry.ID, &entry.Name, &entry.Email, &entry.WhatsApp,
			&entry.PrizeID, &entry.PrizeName, &entry.Won, &kind, &entry.DrawnAt,
		)
		if err != nil {
			return nil, err
		}
		entry.SpinKind = domain.SpinKind(kind)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *HistoryRepository) CountSpins(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM spin_history`
	return r.count(ctx, query)
}

func (r *HistoryRepository) CountWins(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM spin_history WHERE won = TRUE`
	return r.count(ctx, query)
}

func (r *HistoryRepository) RecentWinners(ctx context.Context, limit int) ([]domain.RecentWinner, error) {
	const query = `
SELECT name, prize_name, spin_kind, drawn_at
FROM spin_history
WHERE won = TRUE
ORDER BY drawn_at DESC
LIMIT $1
`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var winners []domain.RecentWinner
	for rows.Next() {
		var (
			winner domain.RecentWinner
			kind   string
		)
		if err := rows.Scan(&winner.Name, &winner.PrizeName, &kind, &winner.DrawnAt); err != nil {
			return nil, err
		}
		winner.SpinKind = domain.SpinKind(kind)
		winners = append(winners, winner)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return winners, nil
}

func (r *HistoryRepository) count(ctx context.Context, query string) (int64, error) {
	db := GetDBTX(ctx, r.pool)
	var count int64
	if err := db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
