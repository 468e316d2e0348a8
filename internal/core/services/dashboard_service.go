package services

import (
	"context"
	"log/slog"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

const recentWinnersLimit = 10

// DashboardService aggregates campaign-wide numbers for the admin dashboard.
type DashboardService struct {
	participants ports.ParticipantRepository
	history      ports.HistoryRepository
	logger       *slog.Logger
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service.
func NewDashboardService(participants ports.ParticipantRepository, history ports.HistoryRepository, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		participants: participants,
		history:      history,
		logger:       logger.With("component", "dashboard_service"),
	}
}

// Overview returns the aggregated campaign statistics.
func (s *DashboardService) Overview(ctx context.Context) (*domain.DashboardStats, error) {
	totalParticipants, err := s.participants.Count(ctx)
	if err != nil {
		return nil, err
	}
	wins, err := s.history.CountWins(ctx)
	if err != nil {
		return nil, err
	}
	spins, err := s.history.CountSpins(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.history.RecentWinners(ctx, recentWinnersLimit)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalParticipants: totalParticipants,
		PrizesAwarded:     wins,
		SpinsPerformed:    spins,
		RecentWinners:     recent,
	}, nil
}
