package services

import (
	"context"
	"log/slog"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/draw"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// DrawService generates synchronized draw resolutions on demand (outside
// the command flow) and serves seed lookups for replaying clients.
type DrawService struct {
	roster ports.RosterSource
	ledger ports.DrawLedger
	logger *slog.Logger
}

var _ ports.DrawService = (*DrawService)(nil)

// NewDrawService creates a new draw service.
func NewDrawService(roster ports.RosterSource, ledger ports.DrawLedger, logger *slog.Logger) *DrawService {
	return &DrawService{
		roster: roster,
		ledger: ledger,
		logger: logger.With("component", "draw_service"),
	}
}

// GenerateSynchronized resolves one winner for the requested roster size,
// snapshots the concrete participant at that index, and appends the
// resolution to the ledger.
func (s *DrawService) GenerateSynchronized(ctx context.Context, params ports.GenerateDrawParams) (*domain.DrawResolution, error) {
	if params.TotalParticipants <= 0 {
		return nil, apperrors.ErrInvalidRoster
	}

	seed := draw.NewSeed()
	winnerIndex, err := draw.Resolve(seed, params.TotalParticipants)
	if err != nil {
		return nil, err
	}

	roster, err := s.roster.ListEligible(ctx)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, apperrors.ErrInvalidRoster
	}
	if winnerIndex >= len(roster) {
		// The caller's roster-size claim no longer matches reality.
		return nil, apperrors.ErrRosterTooSmall
	}
	winner := roster[winnerIndex]

	prizeName := params.PrizeName
	if prizeName == "" {
		prizeName = "Prize"
	}

	resolution := &domain.DrawResolution{
		Seed:                seed,
		WinnerIndex:         winnerIndex,
		TotalParticipants:   params.TotalParticipants,
		PrizeID:             params.PrizeID,
		PrizeName:           prizeName,
		WinnerParticipantID: winner.ID,
		WinnerName:          winner.Name,
		WinnerEmail:         winner.Email,
	}
	if err := resolution.Validate(); err != nil {
		return nil, err
	}

	id, err := s.ledger.Record(ctx, resolution)
	if err != nil {
		return nil, err
	}
	resolution.ID = id

	s.logger.Info("synchronized draw recorded",
		"seed", seed,
		"winner_index", winnerIndex,
		"total_participants", params.TotalParticipants,
		"prize", prizeName,
	)
	return resolution, nil
}

// ResolutionBySeed replays a recorded draw. Unknown seeds are a normal
// negative result.
func (s *DrawService) ResolutionBySeed(ctx context.Context, seed string) (*domain.DrawResolution, error) {
	if seed == "" {
		return nil, apperrors.ErrInvalidSeed
	}
	return s.ledger.FetchBySeed(ctx, seed)
}
