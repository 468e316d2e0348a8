package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// HistoryService records spin outcomes. Spins landing on a consolation slot
// are acknowledged but never persisted or notified.
type HistoryService struct {
	history  ports.HistoryRepository
	notifier ports.Notifier
	logger   *slog.Logger
}

var _ ports.HistoryService = (*HistoryService)(nil)

// NewHistoryService creates a new history service.
func NewHistoryService(history ports.HistoryRepository, notifier ports.Notifier, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		history:  history,
		notifier: notifier,
		logger:   logger.With("component", "history_service"),
	}
}

// RecordSpin persists a real win and fires the win webhook. Consolation
// outcomes return Recorded=false without touching storage.
func (s *HistoryService) RecordSpin(ctx context.Context, params ports.SpinParams) (*ports.SpinResult, error) {
	if params.Participant.Name == "" {
		return nil, apperrors.ErrSpinParticipantRequired
	}
	if params.Prize.Name == "" {
		return nil, apperrors.ErrSpinPrizeRequired
	}

	kind := params.Kind
	if kind == "" {
		kind = domain.SpinKindRoulette
	}

	if domain.IsConsolationPrize(params.Prize.Name) {
		s.logger.Debug("consolation spin skipped", "prize", params.Prize.Name, "kind", kind)
		return &ports.SpinResult{Recorded: false}, nil
	}

	entry := &domain.HistoryEntry{
		Name:      params.Participant.Name,
		Email:     params.Participant.Email,
		WhatsApp:  params.Participant.WhatsApp,
		PrizeID:   params.Prize.ID,
		PrizeName: params.Prize.Name,
		Won:       true,
		SpinKind:  kind,
		DrawnAt:   time.Now(),
	}
	id, err := s.history.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	notifyCtx := context.WithoutCancel(ctx)
	go s.notifier.NotifyPrizeWin(notifyCtx, ports.PrizeWinNotification{
		Name:             params.Participant.Name,
		Email:            params.Participant.Email,
		WhatsApp:         params.Participant.WhatsApp,
		PrizeName:        params.Prize.Name,
		PrizeDescription: params.Prize.Description,
		PrizeIcon:        params.Prize.Icon,
		SpinKind:         kind,
		EntryID:          id,
	})

	s.logger.Info("prize win recorded", "entry_id", id, "prize", params.Prize.Name, "kind", kind)
	return &ports.SpinResult{Recorded: true, EntryID: id}, nil
}

// List returns spin history entries, optionally wins only.
func (s *HistoryService) List(ctx context.Context, params ports.HistoryListParams) ([]*domain.HistoryEntry, error) {
	return s.history.List(ctx, params)
}
