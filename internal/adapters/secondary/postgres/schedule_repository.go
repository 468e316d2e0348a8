package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// ScheduleRepository persists scheduled draw days and scratch-card windows.
// The two kinds live in separate tables with an identical shape; prize
// sub-windows are a JSONB column.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ScheduleRepository = (*ScheduleRepository)(nil)

func NewScheduleRepository(pool *pgxpool.Pool) ports.ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func tableFor(kind ports.ScheduleKind) string {
	if kind == ports.ScheduleKindScratchOff {
		return "scheduled_scratchcards"
	}
	return "scheduled_draws"
}

func (r *ScheduleRepository) Create(ctx context.Context, kind ports.ScheduleKind, schedule *domain.Schedule) (*domain.Schedule, error) {
	query := fmt.Sprintf(`
INSERT INTO %s (date, start_time, end_time, prize_windows, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`, tableFor(kind))

	windows, err := json.Marshal(schedule.PrizeWindows)
	if err != nil {
		return nil, err
	}

	db := GetDBTX(ctx, r.pool)
	err = db.QueryRow(ctx, query,
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		windows,
		string(schedule.Status),
	).Scan(&schedule.ID, &schedule.CreatedAt)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *ScheduleRepository) List(ctx context.Context, kind ports.ScheduleKind, status *domain.ScheduleStatus) ([]*domain.Schedule, error) {
	query := fmt.Sprintf(`
SELECT id, date, start_time, end_time, prize_windows, status, created_at
FROM %s
`, tableFor(kind))

	args := []any{}
	if status != nil {
		query += "WHERE status = $1\n"
		args = append(args, string(*status))
	}
	query += "ORDER BY date ASC, start_time ASC"

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*domain.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *ScheduleRepository) UpdateStatus(ctx context.Context, kind ports.ScheduleKind, id int64, status domain.ScheduleStatus) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $2 WHERE id = $1`, tableFor(kind))

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, kind ports.ScheduleKind, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableFor(kind))

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}

// FindOpen returns the schedule whose window covers the given date and
// HH:MM clock value and whose status still admits activity.
func (r *ScheduleRepository) FindOpen(ctx context.Context, kind ports.ScheduleKind, date, clock string) (*domain.Schedule, error) {
	query := fmt.Sprintf(`
SELECT id, date, start_time, end_time, prize_windows, status, created_at
FROM %s
WHERE date = $1
  AND start_time <= $2
  AND end_time >= $2
  AND status IN ('pending', 'active')
ORDER BY start_time ASC
LIMIT 1
`, tableFor(kind))

	db := GetDBTX(ctx, r.pool)
	schedule, err := scanSchedule(db.QueryRow(ctx, query, date, clock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var (
		s       domain.Schedule
		status  string
		windows []byte
	)
	err := row.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &windows, &status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	s.Status = domain.ScheduleStatus(status)
	if len(windows) > 0 {
		if err := json.Unmarshal(windows, &s.PrizeWindows); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
