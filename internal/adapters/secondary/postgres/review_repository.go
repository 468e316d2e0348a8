package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(pool *pgxpool.Pool) ports.ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
INSERT INTO google_reviews (participant_id, participant_name, participant_email, reviewed_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`

	db := GetDBTX(ctx, r.pool)
	return db.QueryRow(ctx, query,
		review.ParticipantID,
		review.ParticipantName,
		review.ParticipantEmail,
		review.ReviewedAt,
	).Scan(&review.ID)
}
