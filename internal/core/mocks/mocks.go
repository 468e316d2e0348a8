package mocks

import (
	"context"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockParticipantRepository is a mock implementation of ports.ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func NewMockParticipantRepository() *MockParticipantRepository {
	return &MockParticipantRepository{}
}

func (m *MockParticipantRepository) ListEligible(ctx context.Context) ([]*domain.Participant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Participant), args.Error(1)
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error) {
	args := m.Called(ctx, participant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *MockParticipantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func (m *MockParticipantRepository) ExistsByContact(ctx context.Context, email, whatsapp string) (bool, error) {
	args := m.Called(ctx, email, whatsapp)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipantRepository) List(ctx context.Context) ([]*domain.Participant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Participant), args.Error(1)
}

func (m *MockParticipantRepository) ListWithReferrers(ctx context.Context) ([]*domain.ParticipantWithReferrer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ParticipantWithReferrer), args.Error(1)
}

func (m *MockParticipantRepository) ListReferredBy(ctx context.Context, referrerID int64) ([]*domain.Participant, error) {
	args := m.Called(ctx, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Participant), args.Error(1)
}

func (m *MockParticipantRepository) AddChances(ctx context.Context, id int64, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockParticipantRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParticipantRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of ports.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{}
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// MockPrizeRepository is a mock implementation of ports.PrizeRepository
type MockPrizeRepository struct {
	mock.Mock
}

func NewMockPrizeRepository() *MockPrizeRepository {
	return &MockPrizeRepository{}
}

func (m *MockPrizeRepository) Create(ctx context.Context, prize *domain.Prize) (*domain.Prize, error) {
	args := m.Called(ctx, prize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prize), args.Error(1)
}

func (m *MockPrizeRepository) GetByID(ctx context.Context, id int64) (*domain.Prize, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prize), args.Error(1)
}

func (m *MockPrizeRepository) Update(ctx context.Context, prize *domain.Prize) (*domain.Prize, error) {
	args := m.Called(ctx, prize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prize), args.Error(1)
}

func (m *MockPrizeRepository) List(ctx context.Context) ([]*domain.Prize, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Prize), args.Error(1)
}

func (m *MockPrizeRepository) ListActive(ctx context.Context) ([]*domain.Prize, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Prize), args.Error(1)
}

func (m *MockPrizeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDrawLedger is a mock implementation of ports.DrawLedger
type MockDrawLedger struct {
	mock.Mock
}

func NewMockDrawLedger() *MockDrawLedger {
	return &MockDrawLedger{}
}

func (m *MockDrawLedger) Record(ctx context.Context, resolution *domain.DrawResolution) (int64, error) {
	args := m.Called(ctx, resolution)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDrawLedger) FetchBySeed(ctx context.Context, seed string) (*domain.DrawResolution, error) {
	args := m.Called(ctx, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DrawResolution), args.Error(1)
}

// MockHistoryRepository is a mock implementation of ports.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *domain.HistoryEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) List(ctx context.Context, params ports.HistoryListParams) ([]*domain.HistoryEntry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) CountSpins(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) CountWins(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) RecentWinners(ctx context.Context, limit int) ([]domain.RecentWinner, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecentWinner), args.Error(1)
}

// MockScheduleRepository is a mock implementation of ports.ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{}
}

func (m *MockScheduleRepository) Create(ctx context.Context, kind ports.ScheduleKind, schedule *domain.Schedule) (*domain.Schedule, error) {
	args := m.Called(ctx, kind, schedule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) List(ctx context.Context, kind ports.ScheduleKind, status *domain.ScheduleStatus) ([]*domain.Schedule, error) {
	args := m.Called(ctx, kind, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) UpdateStatus(ctx context.Context, kind ports.ScheduleKind, id int64, status domain.ScheduleStatus) error {
	args := m.Called(ctx, kind, id, status)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, kind ports.ScheduleKind, id int64) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindOpen(ctx context.Context, kind ports.ScheduleKind, date, clock string) (*domain.Schedule, error) {
	args := m.Called(ctx, kind, date, clock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

// MockSettingsRepository is a mock implementation of ports.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockCommandMailbox is a mock implementation of ports.CommandMailbox
type MockCommandMailbox struct {
	mock.Mock
}

func NewMockCommandMailbox() *MockCommandMailbox {
	return &MockCommandMailbox{}
}

func (m *MockCommandMailbox) Publish(cmd domain.Command) {
	m.Called(cmd)
}

func (m *MockCommandMailbox) Peek() (domain.Command, bool) {
	args := m.Called()
	return args.Get(0).(domain.Command), args.Bool(1)
}

func (m *MockCommandMailbox) Clear() {
	m.Called()
}

// MockCommandBroadcaster is a mock implementation of ports.CommandBroadcaster
type MockCommandBroadcaster struct {
	mock.Mock
}

func NewMockCommandBroadcaster() *MockCommandBroadcaster {
	return &MockCommandBroadcaster{}
}

func (m *MockCommandBroadcaster) Broadcast(cmd domain.Command) {
	m.Called(cmd)
}

func (m *MockCommandBroadcaster) Size() int {
	args := m.Called()
	return args.Int(0)
}

// PassthroughTransactionManager satisfies ports.TransactionManager by
// invoking the callback directly, with no transactional semantics. Services
// under test see the same control flow as with the real manager.
type PassthroughTransactionManager struct{}

func NewPassthroughTransactionManager() *PassthroughTransactionManager {
	return &PassthroughTransactionManager{}
}

func (PassthroughTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyPrizeWin(ctx context.Context, params ports.PrizeWinNotification) {
	m.Called(ctx, params)
}

func (m *MockNotifier) NotifyReferrals(ctx context.Context, params ports.ReferralNotification) {
	m.Called(ctx, params)
}

func (m *MockNotifier) SendTest(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
