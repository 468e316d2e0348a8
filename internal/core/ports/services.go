package ports

import (
	"context"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
)

// CommandMailbox holds at most one pending admin command. Publish is
// last-write-wins; Peek arms the expiry timer without consuming the slot.
type CommandMailbox interface {
	Publish(cmd domain.Command)
	Peek() (domain.Command, bool)
	Clear()
}

// CommandBroadcaster fans a command out to every live client connection.
// Delivery failures are per-connection concerns and never surface here.
type CommandBroadcaster interface {
	Broadcast(cmd domain.Command)
	Size() int
}

// DispatchParams is the admin action handed to the dispatch service.
type DispatchParams struct {
	Kind    domain.CommandKind
	Payload map[string]any

	// Prize context carried through unexamined into the persisted
	// resolution when the action starts a draw.
	PrizeID   int64
	PrizeName string
}

// DispatchResult is the delivery confirmation returned to the admin.
type DispatchResult struct {
	ConnectionsNotified int  `json:"connectionsNotified"`
	Stored              bool `json:"stored"`
	Synchronized        bool `json:"synchronized"`
}

// DispatchService orchestrates command enrichment, the mailbox, and the
// broadcast registry.
type DispatchService interface {
	Dispatch(ctx context.Context, params DispatchParams) (*DispatchResult, error)
	// Pending is the polling fallback: a snapshot of the mailbox.
	Pending() (domain.Command, bool)
	Clear()
}

// GenerateDrawParams is the input for an explicit synchronized draw.
type GenerateDrawParams struct {
	TotalParticipants int
	PrizeID           int64
	PrizeName         string
}

// DrawService generates and looks up synchronized draw resolutions.
type DrawService interface {
	GenerateSynchronized(ctx context.Context, params GenerateDrawParams) (*domain.DrawResolution, error)
	ResolutionBySeed(ctx context.Context, seed string) (*domain.DrawResolution, error)
}

// SignUpParams is the input for participant self-registration.
type SignUpParams struct {
	Name     string
	Email    string
	WhatsApp string
}

// ReferralEntry is one person referred by an existing participant.
type ReferralEntry struct {
	Name     string
	Email    string
	WhatsApp string
}

// ReferralBatchParams registers several referrals at once, crediting the
// referrer per accepted entry.
type ReferralBatchParams struct {
	ReferrerID int64
	Entries    []ReferralEntry
}

// ReferralBatchResult reports what happened to each entry.
type ReferralBatchResult struct {
	Saved         int
	ChancesEarned int
	Rejected      []string
}

// ReviewParams records a Google review for the chance bonus.
type ReviewParams struct {
	ParticipantID    int64
	ParticipantName  string
	ParticipantEmail string
}

// ParticipantService covers signup, rosters, referrals, and review bonuses.
type ParticipantService interface {
	SignUp(ctx context.Context, params SignUpParams) (*domain.Participant, error)
	List(ctx context.Context) ([]*domain.Participant, error)
	ListEligible(ctx context.Context) ([]*domain.Participant, error)
	ListWithReferrers(ctx context.Context) ([]*domain.ParticipantWithReferrer, error)
	Delete(ctx context.Context, id int64) error
	RegisterReferrals(ctx context.Context, params ReferralBatchParams) (*ReferralBatchResult, error)
	ListReferrals(ctx context.Context, participantID int64) ([]*domain.Participant, error)
	RecordReview(ctx context.Context, params ReviewParams) error
}

// PrizeUpdateParams carries the optional fields of a prize update; nil
// pointers leave the stored value untouched.
type PrizeUpdateParams struct {
	Name        *string
	Description *string
	Kind        *domain.PrizeKind
	Probability *int
	Icon        *string
	Active      *bool
}

// PrizeService manages the prize catalogue.
type PrizeService interface {
	Create(ctx context.Context, params domain.PrizeParams) (*domain.Prize, error)
	Update(ctx context.Context, id int64, params PrizeUpdateParams) (*domain.Prize, error)
	List(ctx context.Context) ([]*domain.Prize, error)
	ListActive(ctx context.Context) ([]*domain.Prize, error)
	Delete(ctx context.Context, id int64) error
}

// SpinParticipant is the participant snapshot carried on a spin record.
type SpinParticipant struct {
	Name     string
	Email    string
	WhatsApp string
}

// SpinPrize is the prize snapshot carried on a spin record.
type SpinPrize struct {
	ID          int64
	Name        string
	Description string
	Icon        string
}

// SpinParams records one roulette or scratch-card outcome.
type SpinParams struct {
	Participant SpinParticipant
	Prize       SpinPrize
	Kind        domain.SpinKind
}

// SpinResult reports whether a spin produced a persisted win.
type SpinResult struct {
	Recorded bool
	EntryID  int64
}

// HistoryService records and lists spin outcomes.
type HistoryService interface {
	RecordSpin(ctx context.Context, params SpinParams) (*SpinResult, error)
	List(ctx context.Context, params HistoryListParams) ([]*domain.HistoryEntry, error)
}

// ActiveWindow describes the schedule window currently open, with its
// active prize sub-windows resolved.
type ActiveWindow struct {
	Schedule     *domain.Schedule
	ActivePrizes []domain.PrizeWindow
}

// ScheduleService manages scheduled draws and scratch-card windows.
type ScheduleService interface {
	Create(ctx context.Context, kind ScheduleKind, params domain.ScheduleParams) (*domain.Schedule, error)
	List(ctx context.Context, kind ScheduleKind, status *domain.ScheduleStatus) ([]*domain.Schedule, error)
	UpdateStatus(ctx context.Context, kind ScheduleKind, id int64, status domain.ScheduleStatus) error
	Delete(ctx context.Context, kind ScheduleKind, id int64) error
	// ActiveNow resolves the window open at the current instant, or
	// ErrScheduleNotFound when none is.
	ActiveNow(ctx context.Context, kind ScheduleKind) (*ActiveWindow, error)
}

// SettingsService exposes the key/value configuration rows.
type SettingsService interface {
	List(ctx context.Context) ([]domain.Setting, error)
	Update(ctx context.Context, values map[string]string) error
}

// DashboardService aggregates campaign stats for the admin dashboard.
type DashboardService interface {
	Overview(ctx context.Context) (*domain.DashboardStats, error)
}

// AuthService validates admin credentials and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// PrizeWinNotification is the webhook payload for a real win.
type PrizeWinNotification struct {
	Name             string
	Email            string
	WhatsApp         string
	PrizeName        string
	PrizeDescription string
	PrizeIcon        string
	SpinKind         domain.SpinKind
	EntryID          int64
}

// ReferralNotification is the webhook payload for a referral batch.
type ReferralNotification struct {
	ReferrerName   string
	ReferrerEmail  string
	ReferrerPhone  string
	TotalReferrals int
	ChancesEarned  int
	ReferredNames  []string
}

// TransactionManager is the port for running a group of repository calls
// atomically. Repositories pick the transaction up from the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier is the fire-and-forget outbound webhook port. The core never
// awaits or branches on delivery; implementations log failures themselves.
type Notifier interface {
	NotifyPrizeWin(ctx context.Context, params PrizeWinNotification)
	NotifyReferrals(ctx context.Context, params ReferralNotification)
	// SendTest pushes a canned payload so admins can verify the hook; it is
	// the one call whose outcome is reported back.
	SendTest(ctx context.Context) error
}
