package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// ScheduleService manages scheduled draw days and scratch-card windows.
type ScheduleService struct {
	schedules ports.ScheduleRepository
	now       func() time.Time
	logger    *slog.Logger
}

var _ ports.ScheduleService = (*ScheduleService)(nil)

// NewScheduleService creates a new schedule service.
func NewScheduleService(schedules ports.ScheduleRepository, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		now:       time.Now,
		logger:    logger.With("component", "schedule_service"),
	}
}

// Create validates and stores a new pending schedule.
func (s *ScheduleService) Create(ctx context.Context, kind ports.ScheduleKind, params domain.ScheduleParams) (*domain.Schedule, error) {
	schedule, err := domain.NewSchedule(params)
	if err != nil {
		return nil, err
	}

	created, err := s.schedules.Create(ctx, kind, schedule)
	if err != nil {
		return nil, err
	}

	s.logger.Info("schedule created", "kind", kind, "schedule_id", created.ID, "date", created.Date)
	return created, nil
}

// List returns schedules of the given kind, optionally filtered by status.
func (s *ScheduleService) List(ctx context.Context, kind ports.ScheduleKind, status *domain.ScheduleStatus) ([]*domain.Schedule, error) {
	return s.schedules.List(ctx, kind, status)
}

// UpdateStatus moves a schedule through its lifecycle.
func (s *ScheduleService) UpdateStatus(ctx context.Context, kind ports.ScheduleKind, id int64, status domain.ScheduleStatus) error {
	if err := s.schedules.UpdateStatus(ctx, kind, id, status); err != nil {
		return err
	}
	s.logger.Info("schedule status updated", "kind", kind, "schedule_id", id, "status", status)
	return nil
}

// Delete removes a schedule.
func (s *ScheduleService) Delete(ctx context.Context, kind ports.ScheduleKind, id int64) error {
	if err := s.schedules.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.logger.Info("schedule deleted", "kind", kind, "schedule_id", id)
	return nil
}

// ActiveNow resolves the window open at the current instant, with its active
// prize sub-windows, or ErrScheduleNotFound when none is open.
func (s *ScheduleService) ActiveNow(ctx context.Context, kind ports.ScheduleKind) (*ports.ActiveWindow, error) {
	now := s.now()
	date := now.Format(domain.DateFormat)
	clock := now.Format(domain.ClockFormat)

	schedule, err := s.schedules.FindOpen(ctx, kind, date, clock)
	if err != nil {
		return nil, err
	}

	return &ports.ActiveWindow{
		Schedule:     schedule,
		ActivePrizes: schedule.ActivePrizes(now),
	}, nil
}
