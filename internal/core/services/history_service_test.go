package services_test

import (
	"context"
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

func TestHistoryService_RecordSpin(t *testing.T) {
	ctx := context.Background()
	participant := ports.SpinParticipant{
		Name:     "Maria",
		Email:    "maria@example.com",
		WhatsApp: "+5511999990000",
	}

	t.Run("persists a real win", func(t *testing.T) {
		mockRepo := mocks.NewMockHistoryRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewHistoryService(mockRepo, mockNotifier, testLogger())

		var created *domain.HistoryEntry
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.HistoryEntry")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.HistoryEntry)
			}).Return(int64(33), nil)
		mockNotifier.On("NotifyPrizeWin", mock.Anything, mock.Anything).Return().Maybe()

		result, err := svc.RecordSpin(ctx, ports.SpinParams{
			Participant: participant,
			Prize:       ports.SpinPrize{ID: 2, Name: "10% de desconto"},
			Kind:        domain.SpinKindScratchOff,
		})

		require.NoError(t, err)
		assert.True(t, result.Recorded)
		assert.Equal(t, int64(33), result.EntryID)

		require.NotNil(t, created)
		assert.True(t, created.Won)
		assert.Equal(t, domain.SpinKindScratchOff, created.SpinKind)
		assert.Equal(t, "10% de desconto", created.PrizeName)
	})

	t.Run("acknowledges consolation spins without persisting", func(t *testing.T) {
		mockRepo := mocks.NewMockHistoryRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewHistoryService(mockRepo, mockNotifier, testLogger())

		result, err := svc.RecordSpin(ctx, ports.SpinParams{
			Participant: participant,
			Prize:       ports.SpinPrize{Name: "Não foi dessa vez"},
		})

		require.NoError(t, err)
		assert.False(t, result.Recorded)
		assert.Zero(t, result.EntryID)
		mockRepo.AssertNotCalled(t, "Create")
		mockNotifier.AssertNotCalled(t, "NotifyPrizeWin")
	})

	t.Run("defaults the spin kind to roulette", func(t *testing.T) {
		mockRepo := mocks.NewMockHistoryRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewHistoryService(mockRepo, mockNotifier, testLogger())

		var created *domain.HistoryEntry
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.HistoryEntry")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.HistoryEntry)
			}).Return(int64(1), nil)
		mockNotifier.On("NotifyPrizeWin", mock.Anything, mock.Anything).Return().Maybe()

		_, err := svc.RecordSpin(ctx, ports.SpinParams{
			Participant: participant,
			Prize:       ports.SpinPrize{Name: "Brinde"},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.SpinKindRoulette, created.SpinKind)
	})

	t.Run("requires a participant", func(t *testing.T) {
		mockRepo := mocks.NewMockHistoryRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewHistoryService(mockRepo, mockNotifier, testLogger())

		_, err := svc.RecordSpin(ctx, ports.SpinParams{
			Prize: ports.SpinPrize{Name: "Brinde"},
		})

		assert.ErrorIs(t, err, apperrors.ErrSpinParticipantRequired)
	})

	t.Run("requires a prize", func(t *testing.T) {
		mockRepo := mocks.NewMockHistoryRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewHistoryService(mockRepo, mockNotifier, testLogger())

		_, err := svc.RecordSpin(ctx, ports.SpinParams{Participant: participant})

		assert.ErrorIs(t, err, apperrors.ErrSpinPrizeRequired)
	})
}

func TestHistoryService_List(t *testing.T) {
	ctx := context.Background()

	mockRepo := mocks.NewMockHistoryRepository()
	mockNotifier := mocks.NewMockNotifier()

	svc := services.NewHistoryService(mockRepo, mockNotifier, testLogger())

	expected := []*domain.HistoryEntry{{ID: 1, PrizeName: "Brinde", Won: true}}
	params := ports.HistoryListParams{WonOnly: true, Limit: 50}
	mockRepo.On("List", ctx, params).Return(expected, nil)

	entries, err := svc.List(ctx, params)

	require.NoError(t, err)
	assert.Equal(t, expected, entries)
}
