package domain_test

import (
	"testing"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrize(t *testing.T) {
	t.Run("valid prize keeps the given fields", func(t *testing.T) {
		p, err := domain.NewPrize(domain.PrizeParams{
			Name:        "10% discount",
			Description: "On the next visit",
			Kind:        domain.PrizeKindRoulette,
			Probability: 35,
			Icon:        "🎉",
			Active:      true,
		})

		require.NoError(t, err)
		assert.Equal(t, "10% discount", p.Name)
		assert.Equal(t, domain.PrizeKindRoulette, p.Kind)
		assert.Equal(t, 35, p.Probability)
		assert.Equal(t, "🎉", p.Icon)
		assert.True(t, p.Active)
	})

	t.Run("applies defaults for kind, probability and icon", func(t *testing.T) {
		p, err := domain.NewPrize(domain.PrizeParams{Name: "Brinde"})

		require.NoError(t, err)
		assert.Equal(t, domain.PrizeKindBoth, p.Kind)
		assert.Equal(t, domain.DefaultProbability, p.Probability)
		assert.Equal(t, domain.DefaultIcon, p.Icon)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := domain.NewPrize(domain.PrizeParams{Name: "   "})
		assert.ErrorIs(t, err, apperrors.ErrPrizeNameRequired)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := domain.NewPrize(domain.PrizeParams{Name: "Brinde", Kind: "lottery"})
		assert.ErrorIs(t, err, apperrors.ErrPrizeKindInvalid)
	})

	t.Run("rejects probability above 100", func(t *testing.T) {
		_, err := domain.NewPrize(domain.PrizeParams{Name: "Brinde", Probability: 101})
		assert.ErrorIs(t, err, apperrors.ErrPrizeProbabilityInvalid)
	})
}
