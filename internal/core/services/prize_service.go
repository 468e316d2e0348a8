package services

import (
	"context"
	"log/slog"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// PrizeService manages the prize catalogue.
type PrizeService struct {
	prizes ports.PrizeRepository
	logger *slog.Logger
}

var _ ports.PrizeService = (*PrizeService)(nil)

// NewPrizeService creates a new prize service.
func NewPrizeService(prizes ports.PrizeRepository, logger *slog.Logger) *PrizeService {
	return &PrizeService{
		prizes: prizes,
		logger: logger.With("component", "prize_service"),
	}
}

// Create validates and stores a new prize.
func (s *PrizeService) Create(ctx context.Context, params domain.PrizeParams) (*domain.Prize, error) {
	prize, err := domain.NewPrize(params)
	if err != nil {
		return nil, err
	}

	created, err := s.prizes.Create(ctx, prize)
	if err != nil {
		return nil, err
	}

	s.logger.Info("prize created", "prize_id", created.ID, "name", created.Name)
	return created, nil
}

// Update applies the non-nil fields of params to the stored prize and
// revalidates the result.
func (s *PrizeService) Update(ctx context.Context, id int64, params ports.PrizeUpdateParams) (*domain.Prize, error) {
	prize, err := s.prizes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		prize.Name = *params.Name
	}
	if params.Description != nil {
		prize.Description = *params.Description
	}
	if params.Kind != nil {
		prize.Kind = *params.Kind
	}
	if params.Probability != nil {
		prize.Probability = *params.Probability
	}
	if params.Icon != nil {
		prize.Icon = *params.Icon
	}
	if params.Active != nil {
		prize.Active = *params.Active
	}

	validated, err := domain.NewPrize(domain.PrizeParams{
		Name:        prize.Name,
		Description: prize.Description,
		Kind:        prize.Kind,
		Probability: prize.Probability,
		Icon:        prize.Icon,
		Active:      prize.Active,
	})
	if err != nil {
		return nil, err
	}
	validated.ID = prize.ID

	updated, err := s.prizes.Update(ctx, validated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("prize updated", "prize_id", updated.ID)
	return updated, nil
}

// List returns the full catalogue, active or not.
func (s *PrizeService) List(ctx context.Context) ([]*domain.Prize, error) {
	return s.prizes.List(ctx)
}

// ListActive returns only prizes currently in play.
func (s *PrizeService) ListActive(ctx context.Context) ([]*domain.Prize, error) {
	return s.prizes.ListActive(ctx)
}

// Delete removes a prize from the catalogue.
func (s *PrizeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.prizes.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.prizes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("prize deleted", "prize_id", id)
	return nil
}
