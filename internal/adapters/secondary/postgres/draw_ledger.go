package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// DrawLedger is the append-only store of synchronized draw resolutions.
// Rows are never updated or deleted; clients replaying a seed always see
// the originally recorded tuple.
type DrawLedger struct {
	pool *pgxpool.Pool
}

var _ ports.DrawLedger = (*DrawLedger)(nil)

func NewDrawLedger(pool *pgxpool.Pool) ports.DrawLedger {
	return &DrawLedger{pool: pool}
}

func (r *DrawLedger) Record(ctx context.Context, resolution *domain.DrawResolution) (int64, error) {
	const query = `
INSERT INTO synchronized_draws
	(seed, winner_index, total_participants, prize_id, prize_name,
	 winner_participant_id, winner_name, winner_email)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at
`

	var prizeID *int64
	if resolution.PrizeID != 0 {
		prizeID = &resolution.PrizeID
	}
	var winnerID *int64
	if resolution.WinnerParticipantID != 0 {
		winnerID = &resolution.WinnerParticipantID
	}

	db := GetDBTX(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		resolution.Seed,
		resolution.WinnerIndex,
		resolution.TotalParticipants,
		prizeID,
		resolution.PrizeName,
		winnerID,
		resolution.WinnerName,
		resolution.WinnerEmail,
	).Scan(&resolution.ID, &resolution.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}

	return resolution.ID, nil
}

func (r *DrawLedger) FetchBySeed(ctx context.Context, seed string) (*domain.DrawResolution, error) {
	const query = `
SELECT id, seed, winner_index, total_participants, prize_id, prize_name,
       winner_participant_id, winner_name, winner_email, created_at
FROM synchronized_draws
WHERE seed = $1
ORDER BY created_at DESC
LIMIT 1
`

	db := GetDBTX(ctx, r.pool)

	var (
		res      domain.DrawResolution
		prizeID  *int64
		winnerID *int64
	)
	err := db.QueryRow(ctx, query, seed).Scan(
		&res.ID, &res.Seed, &res.WinnerIndex, &res.TotalParticipants,
		&prizeID, &res.PrizeName, &winnerID, &res.WinnerName, &res.WinnerEmail,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResolutionNotFound
		}
		return nil, err
	}

	if prizeID != nil {
		res.PrizeID = *prizeID
	}
	if winnerID != nil {
		res.WinnerParticipantID = *winnerID
	}
	return &res, nil
}
