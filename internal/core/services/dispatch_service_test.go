package services_test

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/mocks"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eligibleRoster(n int) []*domain.Participant {
	roster := make([]*domain.Participant, n)
	for i := range roster {
		roster[i] = &domain.Participant{
			ID:       int64(i + 1),
			Name:     "Participant " + strconv.Itoa(i+1),
			Email:    "p" + strconv.Itoa(i+1) + "@example.com",
			WhatsApp: "+55119999000" + strconv.Itoa(i),
			Chances:  domain.DefaultChances,
		}
	}
	return roster
}

func TestDispatchService_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty kind", func(t *testing.T) {
		mockRoster := mocks.NewMockParticipantRepository()
		mockLedger := mocks.NewMockDrawLedger()
		mockMailbox := mocks.NewMockCommandMailbox()
		mockBroadcaster := mocks.NewMockCommandBroadcaster()

		svc := services.NewDispatchService(mockRoster, mockLedger, mockMailbox, mockBroadcaster, testLogger())

		result, err := svc.Dispatch(ctx, ports.DispatchParams{})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrCommandKindRequired)
		mockMailbox.AssertNotCalled(t, "Publish")
		mockBroadcaster.AssertNotCalled(t, "Broadcast")
	})

	t.Run("forwards non-draw commands untouched", func(t *testing.T) {
		mockRoster := mocks.NewMockParticipantRepository()
		mockLedger := mocks.NewMockDrawLedger()
		mockMailbox := mocks.NewMockCommandMailbox()
		mockBroadcaster := mocks.NewMockCommandBroadcaster()

		svc := services.NewDispatchService(mockRoster, mockLedger, mockMailbox, mockBroadcaster, testLogger())

		var published domain.Command
		mockMailbox.On("Publish", mock.AnythingOfType("domain.Command")).
			Run(func(args mock.Arguments) {
				published = args.Get(0).(domain.Command)
			}).Return()
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Command")).Return()
		mockBroadcaster.On("Size").Return(3)

		result, err := svc.Dispatch(ctx, ports.DispatchParams{
			Kind:    domain.CommandReveal,
			Payload: map[string]any{"round": 2},
		})

		require.NoError(t, err)
		assert.True(t, result.Stored)
		assert.False(t, result.Synchronized)
		assert.Equal(t, 3, result.ConnectionsNotified)

		assert.Equal(t, domain.CommandReveal, published.Kind)
		assert.Empty(t, published.Seed)
		assert.Nil(t, published.WinnerIndex)
		assert.NotZero(t, published.IssuedAt)
		mockRoster.AssertNotCalled(t, "ListEligible")
		mockLedger.AssertNotCalled(t, "Record")
	})

	t.Run("enriches draw commands with a recorded resolution", func(t *testing.T) {
		mockRoster := mocks.NewMockParticipantRepository()
		mockLedger := mocks.NewMockDrawLedger()
		mockMailbox := mocks.NewMockCommandMailbox()
		mockBroadcaster := mocks.NewMockCommandBroadcaster()

		svc := services.NewDispatchService(mockRoster, mockLedger, mockMailbox, mockBroadcaster, testLogger())

		roster := eligibleRoster(7)
		mockRoster.On("ListEligible", ctx).Return(roster, nil)

		var recorded *domain.DrawResolution
		mockLedger.On("Record", ctx, mock.AnythingOfType("*domain.DrawResolution")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(*domain.DrawResolution)
			}).Return(int64(1), nil)

		var published domain.Command
		mockMailbox.On("Publish", mock.AnythingOfType("domain.Command")).
			Run(func(args mock.Arguments) {
				published = args.Get(0).(domain.Command)
			}).Return()
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Command")).Return()
		mockBroadcaster.On("Size").Return(12)

		result, err := svc.Dispatch(ctx, ports.DispatchParams{
			Kind:      domain.CommandStartDraw,
			PrizeID:   9,
			PrizeName: "10% de desconto",
		})

		require.NoError(t, err)
		assert.True(t, result.Synchronized)
		assert.Equal(t, 12, result.ConnectionsNotified)

		// The winner must be reproducible from the seed alone.
		require.NotNil(t, recorded)
		n, err := strconv.ParseInt(recorded.Seed, 10, 64)
		require.NoError(t, err)
		assert.Equal(t, int(n%7), recorded.WinnerIndex)
		assert.Equal(t, 7, recorded.TotalParticipants)
		assert.Equal(t, roster[recorded.WinnerIndex].ID, recorded.WinnerParticipantID)
		assert.Equal(t, roster[recorded.WinnerIndex].Name, recorded.WinnerName)
		assert.Equal(t, int64(9), recorded.PrizeID)
		assert.Equal(t, "10% de desconto", recorded.PrizeName)

		// The broadcast command carries the same resolution.
		assert.Equal(t, recorded.Seed, published.Seed)
		require.NotNil(t, published.WinnerIndex)
		assert.Equal(t, recorded.WinnerIndex, *published.WinnerIndex)
		assert.Equal(t, 7, published.TotalParticipants)
		mockLedger.AssertExpectations(t)
	})

	t.Run("forwards raw draw when the roster is empty", func(t *testing.T) {
		mockRoster := mocks.NewMockParticipantRepository()
		mockLedger := mocks.NewMockDrawLedger()
		mockMailbox := mocks.NewMockCommandMailbox()
		mockBroadcaster := mocks.NewMockCommandBroadcaster()

		svc := services.NewDispatchService(mockRoster, mockLedger, mockMailbox, mockBroadcaster, testLogger())

		mockRoster.On("ListEligible", ctx).Return([]*domain.Participant{}, nil)
		mockMailbox.On("Publish", mock.AnythingOfType("domain.Command")).Return()
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Command")).Return()
		mockBroadcaster.On("Size").Return(2)

		result, err := svc.Dispatch(ctx, ports.DispatchParams{Kind: domain.CommandStartDraw})

		require.NoError(t, err)
		assert.True(t, result.Stored)
		assert.False(t, result.Synchronized)
		mockLedger.AssertNotCalled(t, "Record")
	})

	t.Run("forwards raw draw when the roster lookup fails", func(t *testing.T) {
		mockRoster := mocks.NewMockParticipantRepository()
		mockLedger := mocks.NewMockDrawLedger()
		mockMailbox := mocks.NewMockCommandMailbox()
		mockBroadcaster := mocks.NewMockCommandBroadcaster()

		svc := services.NewDispatchService(mockRoster, mockLedger, mockMailbox, mockBroadcaster, testLogger())

		mockRoster.On("ListEligible", ctx).Return(nil, apperrors.ErrPersistence)
		mockMailbox.On("Publish", mock.AnythingOfType("domain.Command")).Return()
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Command")).Return()
		mockBroadcaster.On("Size").Return(0)

		result, err := svc.Dispatch(ctx, ports.DispatchParams{Kind: domain.CommandStartDraw})

		require.NoError(t, err)
		assert.False(t, result.Synchronized)
		mockLedger.AssertNotCalled(t, "Record")
	})

	t.Run("forwards raw draw when the ledger write fails", func(t *testing.T) {
		mockRoster := mocks.NewMockParticipantRepository()
		mockLedger := mocks.NewMockDrawLedger()
		mockMailbox := mocks.NewMockCommandMailbox()
		mockBroadcaster := mocks.NewMockCommandBroadcaster()

		svc := services.NewDispatchService(mockRoster, mockLedger, mockMailbox, mockBroadcaster, testLogger())

		mockRoster.On("ListEligible", ctx).Return(eligibleRoster(5), nil)
		mockLedger.On("Record", ctx, mock.AnythingOfType("*domain.DrawResolution")).
			Return(int64(0), apperrors.ErrPersistence)

		var published domain.Command
		mockMailbox.On("Publish", mock.AnythingOfType("domain.Command")).
			Run(func(args mock.Arguments) {
				published = args.Get(0).(domain.Command)
			}).Return()
		mockBroadcaster.On("Broadcast", mock.AnythingOfType("domain.Command")).Return()
		mockBroadcaster.On("Size").Return(4)

		result, err := svc.Dispatch(ctx, ports.DispatchParams{Kind: domain.CommandStartDraw})

		// The admin call still succeeds; only the enrichment is dropped.
		require.NoError(t, err)
		assert.True(t, result.Stored)
		assert.False(t, result.Synchronized)
		assert.Empty(t, published.Seed)
		assert.Nil(t, published.WinnerIndex)
	})
}

func TestDispatchService_PendingAndClear(t *testing.T) {
	mockRoster := mocks.NewMockParticipantRepository()
	mockLedger := mocks.NewMockDrawLedger()
	mockMailbox := mocks.NewMockCommandMailbox()
	mockBroadcaster := mocks.NewMockCommandBroadcaster()

	svc := services.NewDispatchService(mockRoster, mockLedger, mockMailbox, mockBroadcaster, testLogger())

	held := domain.Command{Kind: domain.CommandReveal, IssuedAt: 100}
	mockMailbox.On("Peek").Return(held, true).Once()
	mockMailbox.On("Clear").Return()

	cmd, ok := svc.Pending()
	assert.True(t, ok)
	assert.Equal(t, held, cmd)

	svc.Clear()
	mockMailbox.AssertExpectations(t)
}
