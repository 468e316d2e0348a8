package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// ParticipantService handles signup, rosters, referral batches, and the
// review chance bonus.
type ParticipantService struct {
	participants ports.ParticipantRepository
	reviews      ports.ReviewRepository
	tx           ports.TransactionManager
	notifier     ports.Notifier
	logger       *slog.Logger
}

var _ ports.ParticipantService = (*ParticipantService)(nil)

// NewParticipantService creates a new participant service.
func NewParticipantService(
	participants ports.ParticipantRepository,
	reviews ports.ReviewRepository,
	tx ports.TransactionManager,
	notifier ports.Notifier,
	logger *slog.Logger,
) *ParticipantService {
	return &ParticipantService{
		participants: participants,
		reviews:      reviews,
		tx:           tx,
		notifier:     notifier,
		logger:       logger.With("component", "participant_service"),
	}
}

// SignUp registers a new participant with the default chance balance.
// Email and WhatsApp must both be unused.
func (s *ParticipantService) SignUp(ctx context.Context, params ports.SignUpParams) (*domain.Participant, error) {
	participant, err := domain.NewParticipant(domain.ParticipantParams{
		Name:     params.Name,
		Email:    params.Email,
		WhatsApp: params.WhatsApp,
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.participants.ExistsByContact(ctx, participant.Email, participant.WhatsApp)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrParticipantExists
	}

	created, err := s.participants.Create(ctx, participant)
	if err != nil {
		return nil, err
	}

	s.logger.Info("participant registered", "participant_id", created.ID, "email", created.Email)
	return created, nil
}

// List returns every participant.
func (s *ParticipantService) List(ctx context.Context) ([]*domain.Participant, error) {
	return s.participants.List(ctx)
}

// ListEligible returns the stable-ordered roster of participants still able
// to win.
func (s *ParticipantService) ListEligible(ctx context.Context) ([]*domain.Participant, error) {
	return s.participants.ListEligible(ctx)
}

// ListWithReferrers returns the admin listing joined to each referrer.
func (s *ParticipantService) ListWithReferrers(ctx context.Context) ([]*domain.ParticipantWithReferrer, error) {
	return s.participants.ListWithReferrers(ctx)
}

// Delete removes a participant.
func (s *ParticipantService) Delete(ctx context.Context, id int64) error {
	if err := s.participants.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("participant deleted", "participant_id", id)
	return nil
}

// RegisterReferrals registers a batch of referred people on behalf of an
// existing participant. Entries that fail validation or collide with an
// existing contact are rejected individually; the batch never fails as a
// whole. The referrer earns one chance per accepted entry.
func (s *ParticipantService) RegisterReferrals(ctx context.Context, params ports.ReferralBatchParams) (*ports.ReferralBatchResult, error) {
	if len(params.Entries) == 0 {
		return nil, apperrors.ErrNoReferrals
	}

	referrer, err := s.participants.GetByID(ctx, params.ReferrerID)
	if err != nil {
		return nil, err
	}

	result := &ports.ReferralBatchResult{}
	var savedNames []string
	for _, entry := range params.Entries {
		referred, err := domain.NewParticipant(domain.ParticipantParams{
			Name:       entry.Name,
			Email:      entry.Email,
			WhatsApp:   entry.WhatsApp,
			ReferredBy: &referrer.ID,
		})
		if err != nil {
			result.Rejected = append(result.Rejected, fmt.Sprintf("%s: %v", entry.Name, err))
			continue
		}

		exists, err := s.participants.ExistsByContact(ctx, referred.Email, referred.WhatsApp)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Rejected = append(result.Rejected, fmt.Sprintf("%s: %v", entry.Name, apperrors.ErrParticipantExists))
			continue
		}

		if _, err := s.participants.Create(ctx, referred); err != nil {
			if errors.Is(err, apperrors.ErrParticipantExists) {
				result.Rejected = append(result.Rejected, fmt.Sprintf("%s: %v", entry.Name, err))
				continue
			}
			return nil, err
		}
		result.Saved++
		savedNames = append(savedNames, referred.Name)
	}

	if result.Saved > 0 {
		result.ChancesEarned = result.Saved * domain.ReferralBonus
		if err := s.participants.AddChances(ctx, referrer.ID, result.ChancesEarned); err != nil {
			return nil, err
		}

		notifyCtx := context.WithoutCancel(ctx)
		go s.notifier.NotifyReferrals(notifyCtx, ports.ReferralNotification{
			ReferrerName:   referrer.Name,
			ReferrerEmail:  referrer.Email,
			ReferrerPhone:  referrer.WhatsApp,
			TotalReferrals: result.Saved,
			ChancesEarned:  result.ChancesEarned,
			ReferredNames:  savedNames,
		})
	}

	s.logger.Info("referral batch processed",
		"referrer_id", referrer.ID,
		"saved", result.Saved,
		"rejected", len(result.Rejected),
	)
	return result, nil
}

// ListReferrals returns the participants referred by the given participant.
func (s *ParticipantService) ListReferrals(ctx context.Context, participantID int64) ([]*domain.Participant, error) {
	if _, err := s.participants.GetByID(ctx, participantID); err != nil {
		return nil, err
	}
	return s.participants.ListReferredBy(ctx, participantID)
}

// RecordReview credits the review bonus and keeps an audit row of the claim.
func (s *ParticipantService) RecordReview(ctx context.Context, params ports.ReviewParams) error {
	participant, err := s.participants.GetByID(ctx, params.ParticipantID)
	if err != nil {
		return err
	}

	review := &domain.Review{
		ParticipantID:    participant.ID,
		ParticipantName:  participant.Name,
		ParticipantEmail: participant.Email,
		ReviewedAt:       time.Now(),
	}

	// The audit row and the bonus land together or not at all.
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.reviews.Create(ctx, review); err != nil {
			return err
		}
		return s.participants.AddChances(ctx, participant.ID, domain.ReviewBonus)
	})
	if err != nil {
		return err
	}

	s.logger.Info("review bonus granted", "participant_id", participant.ID, "bonus", domain.ReviewBonus)
	return nil
}
