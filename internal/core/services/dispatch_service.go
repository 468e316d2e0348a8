package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/draw"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// DispatchService pushes admin commands to every connected client. Draw
// commands are enriched with a server-resolved winner first, so every
// client reconstructs the same outcome; any failure along the enrichment
// path degrades to forwarding the raw action, because an admin command must
// always reach the clients.
type DispatchService struct {
	roster      ports.RosterSource
	ledger      ports.DrawLedger
	mailbox     ports.CommandMailbox
	broadcaster ports.CommandBroadcaster
	logger      *slog.Logger
}

var _ ports.DispatchService = (*DispatchService)(nil)

// NewDispatchService creates a new dispatch service.
func NewDispatchService(
	roster ports.RosterSource,
	ledger ports.DrawLedger,
	mailbox ports.CommandMailbox,
	broadcaster ports.CommandBroadcaster,
	logger *slog.Logger,
) *DispatchService {
	return &DispatchService{
		roster:      roster,
		ledger:      ledger,
		mailbox:     mailbox,
		broadcaster: broadcaster,
		logger:      logger.With("component", "dispatch_service"),
	}
}

// Dispatch stamps the admin action, enriches it when it starts a draw,
// stores it in the mailbox for pollers, and fans it out to live
// connections.
func (s *DispatchService) Dispatch(ctx context.Context, params ports.DispatchParams) (*ports.DispatchResult, error) {
	if params.Kind == "" {
		return nil, apperrors.ErrCommandKindRequired
	}

	cmd := domain.Command{
		Kind:     params.Kind,
		Payload:  params.Payload,
		IssuedAt: time.Now().UnixMilli(),
	}

	if cmd.IsDraw() {
		if err := s.enrichDraw(ctx, &cmd, params); err != nil {
			// Degrade to the raw action; the admin call still succeeds.
			s.logger.Error("draw enrichment failed, forwarding raw command",
				"kind", cmd.Kind,
				"error", err,
			)
		}
	}

	s.mailbox.Publish(cmd)
	s.broadcaster.Broadcast(cmd)

	return &ports.DispatchResult{
		ConnectionsNotified: s.broadcaster.Size(),
		Stored:              true,
		Synchronized:        cmd.Synchronized(),
	}, nil
}

// enrichDraw resolves a winner against the current roster and persists the
// resolution. The command is only annotated after the ledger write
// succeeds: a winner that could not be persisted must not be broadcast,
// because persistence is what makes the result re-fetchable by seed.
func (s *DispatchService) enrichDraw(ctx context.Context, cmd *domain.Command, params ports.DispatchParams) error {
	roster, err := s.roster.ListEligible(ctx)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		s.logger.Info("no eligible participants, forwarding raw draw command")
		return nil
	}

	seed := draw.NewSeed()
	winnerIndex, err := draw.Resolve(seed, len(roster))
	if err != nil {
		return err
	}
	winner := roster[winnerIndex]

	resolution := &domain.DrawResolution{
		Seed:                seed,
		WinnerIndex:         winnerIndex,
		TotalParticipants:   len(roster),
		PrizeID:             params.PrizeID,
		PrizeName:           params.PrizeName,
		WinnerParticipantID: winner.ID,
		WinnerName:          winner.Name,
		WinnerEmail:         winner.Email,
	}
	if _, err := s.ledger.Record(ctx, resolution); err != nil {
		return err
	}

	cmd.Seed = seed
	cmd.WinnerIndex = &winnerIndex
	cmd.TotalParticipants = len(roster)

	s.logger.Info("draw command synchronized",
		"seed", seed,
		"winner_index", winnerIndex,
		"total_participants", len(roster),
	)
	return nil
}

// Pending returns a snapshot of the mailbox for polling clients.
func (s *DispatchService) Pending() (domain.Command, bool) {
	return s.mailbox.Peek()
}

// Clear empties the mailbox.
func (s *DispatchService) Clear() {
	s.mailbox.Clear()
}
