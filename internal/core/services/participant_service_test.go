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

func TestParticipantService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		mockRepo.On("ExistsByContact", ctx, "maria@example.com", "+5511999990000").Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Participant")).
			Return(&domain.Participant{
				ID:       1,
				Name:     "Maria",
				Email:    "maria@example.com",
				WhatsApp: "+5511999990000",
				Chances:  domain.DefaultChances,
			}, nil)

		participant, err := svc.SignUp(ctx, ports.SignUpParams{
			Name:     "Maria",
			Email:    "Maria@Example.com",
			WhatsApp: "+5511999990000",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), participant.ID)
		assert.Equal(t, domain.DefaultChances, participant.Chances)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate contact", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		mockRepo.On("ExistsByContact", ctx, "maria@example.com", "+5511999990000").Return(true, nil)

		participant, err := svc.SignUp(ctx, ports.SignUpParams{
			Name:     "Maria",
			Email:    "maria@example.com",
			WhatsApp: "+5511999990000",
		})

		assert.Nil(t, participant)
		assert.ErrorIs(t, err, apperrors.ErrParticipantExists)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects invalid input before touching the repository", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		_, err := svc.SignUp(ctx, ports.SignUpParams{Name: "Maria", Email: "bad", WhatsApp: "+55"})

		assert.ErrorIs(t, err, apperrors.ErrEmailInvalid)
		mockRepo.AssertNotCalled(t, "ExistsByContact")
	})
}

func TestParticipantService_RegisterReferrals(t *testing.T) {
	ctx := context.Background()
	referrer := &domain.Participant{
		ID:       10,
		Name:     "Maria",
		Email:    "maria@example.com",
		WhatsApp: "+5511999990000",
	}

	t.Run("saves valid entries and credits the referrer", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		mockRepo.On("GetByID", ctx, int64(10)).Return(referrer, nil)
		mockRepo.On("ExistsByContact", ctx, mock.Anything, mock.Anything).Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Participant")).
			Return(&domain.Participant{ID: 11}, nil)
		mockRepo.On("AddChances", ctx, int64(10), 2*domain.ReferralBonus).Return(nil)
		mockNotifier.On("NotifyReferrals", mock.Anything, mock.Anything).Return().Maybe()

		result, err := svc.RegisterReferrals(ctx, ports.ReferralBatchParams{
			ReferrerID: 10,
			Entries: []ports.ReferralEntry{
				{Name: "João", Email: "joao@example.com", WhatsApp: "+5511888880000"},
				{Name: "Ana", Email: "ana@example.com", WhatsApp: "+5511777770000"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 2*domain.ReferralBonus, result.ChancesEarned)
		assert.Empty(t, result.Rejected)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects bad entries individually without failing the batch", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		mockRepo.On("GetByID", ctx, int64(10)).Return(referrer, nil)
		mockRepo.On("ExistsByContact", ctx, "joao@example.com", "+5511888880000").Return(false, nil)
		mockRepo.On("ExistsByContact", ctx, "ana@example.com", "+5511777770000").Return(true, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Participant")).
			Return(&domain.Participant{ID: 11}, nil)
		mockRepo.On("AddChances", ctx, int64(10), domain.ReferralBonus).Return(nil)
		mockNotifier.On("NotifyReferrals", mock.Anything, mock.Anything).Return().Maybe()

		result, err := svc.RegisterReferrals(ctx, ports.ReferralBatchParams{
			ReferrerID: 10,
			Entries: []ports.ReferralEntry{
				{Name: "João", Email: "joao@example.com", WhatsApp: "+5511888880000"},
				{Name: "Ana", Email: "ana@example.com", WhatsApp: "+5511777770000"},
				{Name: "", Email: "x@example.com", WhatsApp: "+5511666660000"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, domain.ReferralBonus, result.ChancesEarned)
		assert.Len(t, result.Rejected, 2)
	})

	t.Run("requires at least one entry", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		_, err := svc.RegisterReferrals(ctx, ports.ReferralBatchParams{ReferrerID: 10})

		assert.ErrorIs(t, err, apperrors.ErrNoReferrals)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("fails when the referrer does not exist", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		mockRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrParticipantNotFound)

		_, err := svc.RegisterReferrals(ctx, ports.ReferralBatchParams{
			ReferrerID: 99,
			Entries:    []ports.ReferralEntry{{Name: "João", Email: "j@e.com", WhatsApp: "+55"}},
		})

		assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
	})
}

func TestParticipantService_RecordReview(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the audit row and credits the bonus", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		mockRepo.On("GetByID", ctx, int64(7)).Return(&domain.Participant{
			ID:    7,
			Name:  "Maria",
			Email: "maria@example.com",
		}, nil)
		mockReviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)
		mockRepo.On("AddChances", ctx, int64(7), domain.ReviewBonus).Return(nil)

		err := svc.RecordReview(ctx, ports.ReviewParams{ParticipantID: 7})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockReviews.AssertExpectations(t)
	})

	t.Run("fails for unknown participant", func(t *testing.T) {
		mockRepo := mocks.NewMockParticipantRepository()
		mockReviews := mocks.NewMockReviewRepository()
		mockNotifier := mocks.NewMockNotifier()

		svc := services.NewParticipantService(mockRepo, mockReviews, mocks.NewPassthroughTransactionManager(), mockNotifier, testLogger())

		mockRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrParticipantNotFound)

		err := svc.RecordReview(ctx, ports.ReviewParams{ParticipantID: 99})

		assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
		mockReviews.AssertNotCalled(t, "Create")
	})
}
