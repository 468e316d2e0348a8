package ports

import (
	"context"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
)

// RosterSource is the narrow read port the dispatch service depends on: the
// ordered set of participants still eligible to win, sorted by name. The
// ordering must be stable within a single call; winner indexes are relative
// to it.
type RosterSource interface {
	ListEligible(ctx context.Context) ([]*domain.Participant, error)
}

// ParticipantRepository persists campaign participants.
type ParticipantRepository interface {
	RosterSource
	Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error)
	GetByID(ctx context.Context, id int64) (*domain.Participant, error)
	ExistsByContact(ctx context.Context, email, whatsapp string) (bool, error)
	List(ctx context.Context) ([]*domain.Participant, error)
	ListWithReferrers(ctx context.Context) ([]*domain.ParticipantWithReferrer, error)
	ListReferredBy(ctx context.Context, referrerID int64) ([]*domain.Participant, error)
	AddChances(ctx context.Context, id int64, delta int) error
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository stores Google review audit rows.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
}

// PrizeRepository persists prizes.
type PrizeRepository interface {
	Create(ctx context.Context, prize *domain.Prize) (*domain.Prize, error)
	GetByID(ctx context.Context, id int64) (*domain.Prize, error)
	Update(ctx context.Context, prize *domain.Prize) (*domain.Prize, error)
	List(ctx context.Context) ([]*domain.Prize, error)
	ListActive(ctx context.Context) ([]*domain.Prize, error)
	Delete(ctx context.Context, id int64) error
}

// DrawLedger is the append-only log of synchronized draw resolutions. No
// updates or deletes are exposed; a recorded resolution is immutable.
type DrawLedger interface {
	// Record appends a resolution and returns its row ID. Storage failures
	// are wrapped in ErrPersistence.
	Record(ctx context.Context, resolution *domain.DrawResolution) (int64, error)
	// FetchBySeed returns the most recently recorded resolution for the
	// seed, or ErrResolutionNotFound.
	FetchBySeed(ctx context.Context, seed string) (*domain.DrawResolution, error)
}

// HistoryListParams filters the spin history listing.
type HistoryListParams struct {
	WonOnly bool
	Limit   int
}

// HistoryRepository persists spin outcomes.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) (int64, error)
	List(ctx context.Context, params HistoryListParams) ([]*domain.HistoryEntry, error)
	CountSpins(ctx context.Context) (int64, error)
	CountWins(ctx context.Context) (int64, error)
	RecentWinners(ctx context.Context, limit int) ([]domain.RecentWinner, error)
}

// ScheduleKind selects which scheduled-event table a repository call targets.
type ScheduleKind string

const (
	ScheduleKindDraw       ScheduleKind = "draw"
	ScheduleKindScratchOff ScheduleKind = "scratchcard"
)

// ScheduleRepository persists scheduled draw days and scratch-card windows.
type ScheduleRepository interface {
	Create(ctx context.Context, kind ScheduleKind, schedule *domain.Schedule) (*domain.Schedule, error)
	List(ctx context.Context, kind ScheduleKind, status *domain.ScheduleStatus) ([]*domain.Schedule, error)
	UpdateStatus(ctx context.Context, kind ScheduleKind, id int64, status domain.ScheduleStatus) error
	Delete(ctx context.Context, kind ScheduleKind, id int64) error
	// FindOpen returns the schedule whose window covers the given date and
	// clock value and whose status still admits activity, or
	// ErrScheduleNotFound.
	FindOpen(ctx context.Context, kind ScheduleKind, date, clock string) (*domain.Schedule, error)
}

// SettingsRepository stores key/value configuration rows.
type SettingsRepository interface {
	List(ctx context.Context) ([]domain.Setting, error)
	Upsert(ctx context.Context, key, value string) error
}
