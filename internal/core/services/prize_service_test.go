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

func TestPrizeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewMockPrizeRepository()
		svc := services.NewPrizeService(mockRepo, testLogger())

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Prize")).
			Return(&domain.Prize{ID: 1, Name: "Brinde", Kind: domain.PrizeKindBoth}, nil)

		prize, err := svc.Create(ctx, domain.PrizeParams{Name: "Brinde"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), prize.ID)
	})

	t.Run("rejects invalid params before the repository", func(t *testing.T) {
		mockRepo := mocks.NewMockPrizeRepository()
		svc := services.NewPrizeService(mockRepo, testLogger())

		_, err := svc.Create(ctx, domain.PrizeParams{Name: ""})

		assert.ErrorIs(t, err, apperrors.ErrPrizeNameRequired)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestPrizeService_Update(t *testing.T) {
	ctx := context.Background()
	stored := &domain.Prize{
		ID:          5,
		Name:        "Brinde",
		Kind:        domain.PrizeKindRoulette,
		Probability: 20,
		Icon:        "🎁",
		Active:      true,
	}

	t.Run("applies only the provided fields", func(t *testing.T) {
		mockRepo := mocks.NewMockPrizeRepository()
		svc := services.NewPrizeService(mockRepo, testLogger())

		copied := *stored
		mockRepo.On("GetByID", ctx, int64(5)).Return(&copied, nil)

		var updated *domain.Prize
		mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Prize")).
			Run(func(args mock.Arguments) {
				updated = args.Get(1).(*domain.Prize)
			}).Return(&copied, nil)

		newName := "Brinde especial"
		newProbability := 50
		_, err := svc.Update(ctx, 5, ports.PrizeUpdateParams{
			Name:        &newName,
			Probability: &newProbability,
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, int64(5), updated.ID)
		assert.Equal(t, "Brinde especial", updated.Name)
		assert.Equal(t, 50, updated.Probability)
		// Untouched fields survive.
		assert.Equal(t, domain.PrizeKindRoulette, updated.Kind)
		assert.True(t, updated.Active)
	})

	t.Run("revalidates the merged prize", func(t *testing.T) {
		mockRepo := mocks.NewMockPrizeRepository()
		svc := services.NewPrizeService(mockRepo, testLogger())

		copied := *stored
		mockRepo.On("GetByID", ctx, int64(5)).Return(&copied, nil)

		badProbability := 150
		_, err := svc.Update(ctx, 5, ports.PrizeUpdateParams{Probability: &badProbability})

		assert.ErrorIs(t, err, apperrors.ErrPrizeProbabilityInvalid)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("fails for unknown prize", func(t *testing.T) {
		mockRepo := mocks.NewMockPrizeRepository()
		svc := services.NewPrizeService(mockRepo, testLogger())

		mockRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrPrizeNotFound)

		_, err := svc.Update(ctx, 99, ports.PrizeUpdateParams{})

		assert.ErrorIs(t, err, apperrors.ErrPrizeNotFound)
	})
}

func TestPrizeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewMockPrizeRepository()
		svc := services.NewPrizeService(mockRepo, testLogger())

		mockRepo.On("GetByID", ctx, int64(5)).Return(&domain.Prize{ID: 5, Name: "Brinde"}, nil)
		mockRepo.On("Delete", ctx, int64(5)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 5))
		mockRepo.AssertExpectations(t)
	})

	t.Run("fails for unknown prize", func(t *testing.T) {
		mockRepo := mocks.NewMockPrizeRepository()
		svc := services.NewPrizeService(mockRepo, testLogger())

		mockRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrPrizeNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, 99), apperrors.ErrPrizeNotFound)
		mockRepo.AssertNotCalled(t, "Delete")
	})
}
