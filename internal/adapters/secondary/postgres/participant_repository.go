package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

type ParticipantRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ParticipantRepository = (*ParticipantRepository)(nil)

func NewParticipantRepository(pool *pgxpool.Pool) ports.ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error) {
	const query = `
INSERT INTO participants (name, email, whatsapp, chances, drawn, referred_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, registered_at
`

	db := GetDBTX(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		participant.Name,
		participant.Email,
		participant.WhatsApp,
		participant.Chances,
		participant.Drawn,
		participant.ReferredBy,
	).Scan(&participant.ID, &participant.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrParticipantExists
		}
		return nil, err
	}

	return participant, nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	const query = `
SELECT id, name, email, whatsapp, chances, drawn, referred_by, registered_at
FROM participants
WHERE id = $1
`

	db := GetDBTX(ctx, r.pool)
	participant, err := scanParticipant(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, err
	}
	return participant, nil
}

func (r *ParticipantRepository) ExistsByContact(ctx context.Context, email, whatsapp string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM participants WHERE email = $1 OR whatsapp = $2
)
`

	db := GetDBTX(ctx, r.pool)
	var exists bool
	if err := db.QueryRow(ctx, query, email, whatsapp).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ParticipantRepository) List(ctx context.Context) ([]*domain.Participant, error) {
	const query = `
SELECT id, name, email, whatsapp, chances, drawn, referred_by, registered_at
FROM participants
ORDER BY registered_at DESC
`

	return r.queryParticipants(ctx, query)
}

// ListEligible returns participants still able to win, ordered by name. The
// ordering must stay stable: winner indexes in synchronized draws are
// positions in this list.
func (r *ParticipantRepository) ListEligible(ctx context.Context) ([]*domain.Participant, error) {
	const query = `
SELECT id, name, email, whatsapp, chances, drawn, referred_by, registered_at
FROM participants
WHERE drawn = FALSE AND chances > 0
ORDER BY name ASC, id ASC
`

	return r.queryParticipants(ctx, query)
}

func (r *ParticipantRepository) ListWithReferrers(ctx context.Context) ([]*domain.ParticipantWithReferrer, error) {
	const query = `
SELECT p.id, p.name, p.email, p.whatsapp, p.chances, p.drawn, p.referred_by, p.registered_at,
       ref.name, ref.email
FROM participants p
LEFT JOIN participants ref ON p.referred_by = ref.id
ORDER BY p.registered_at DESC
`

	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*domain.ParticipantWithReferrer
	for rows.Next() {
		var p domain.ParticipantWithReferrer
		err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &p.WhatsApp, &p.Chances, &p.Drawn, &p.ReferredBy, &p.RegisteredAt,
			&p.ReferrerName, &p.ReferrerEmail,
		)
		if err != nil {
			return nil, err
		}
		participants = append(participants, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *ParticipantRepository) ListReferredBy(ctx context.Context, referrerID int64) ([]*domain.Participant, error) {
	const query = `
SELECT id, name, email, whatsapp, chances, drawn, referred_by, registered_at
FROM participants
WHERE referred_by = $1
ORDER BY registered_at DESC
`

	return r.queryParticipants(ctx, query, referrerID)
}

func (r *ParticipantRepository) AddChances(ctx context.Context, id int64, delta int) error {
	const query = `
UPDATE participants SET chances = chances + $2 WHERE id = $1
`

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM participants`

	db := GetDBTX(ctx, r.pool)
	var count int64
	if err := db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM participants WHERE id = $1`

	db := GetDBTX(ctx, r.pool)
	tag, err := db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

func (r *ParticipantRepository) queryParticipants(ctx context.Context, query string, args ...any) ([]*domain.Participant, error) {
	db := GetDBTX(ctx, r.pool)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*domain.Participant
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

func scanParticipant(row pgx.Row) (*domain.Participant, error) {
	var p domain.Participant
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.WhatsApp, &p.Chances, &p.Drawn, &p.ReferredBy, &p.RegisteredAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
