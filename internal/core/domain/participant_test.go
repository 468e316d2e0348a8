package domain_test

import (
	"strings"
	"testing"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParticipant(t *testing.T) {
	t.Run("valid participant gets default chances", func(t *testing.T) {
		p, err := domain.NewParticipant(domain.ParticipantParams{
			Name:     "Maria Silva",
			Email:    "maria@example.com",
			WhatsApp: "+5511999990000",
		})

		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", p.Name)
		assert.Equal(t, "maria@example.com", p.Email)
		assert.Equal(t, domain.DefaultChances, p.Chances)
		assert.False(t, p.Drawn)
		assert.Nil(t, p.ReferredBy)
	})

	t.Run("trims whitespace and lowercases the email", func(t *testing.T) {
		p, err := domain.NewParticipant(domain.ParticipantParams{
			Name:     "  Maria Silva  ",
			Email:    " Maria@Example.COM ",
			WhatsApp: " +5511999990000 ",
		})

		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", p.Name)
		assert.Equal(t, "maria@example.com", p.Email)
		assert.Equal(t, "+5511999990000", p.WhatsApp)
	})

	t.Run("keeps the referrer reference", func(t *testing.T) {
		referrerID := int64(42)
		p, err := domain.NewParticipant(domain.ParticipantParams{
			Name:       "João",
			Email:      "joao@example.com",
			WhatsApp:   "+5511888880000",
			ReferredBy: &referrerID,
		})

		require.NoError(t, err)
		require.NotNil(t, p.ReferredBy)
		assert.Equal(t, int64(42), *p.ReferredBy)
	})

	tests := []struct {
		name    string
		params  domain.ParticipantParams
		wantErr error
	}{
		{
			name:    "missing name",
			params:  domain.ParticipantParams{Email: "a@b.com", WhatsApp: "+55"},
			wantErr: apperrors.ErrNameRequired,
		},
		{
			name: "name too long",
			params: domain.ParticipantParams{
				Name:     strings.Repeat("a", domain.MaxNameLength+1),
				Email:    "a@b.com",
				WhatsApp: "+55",
			},
			wantErr: apperrors.ErrNameTooLong,
		},
		{
			name:    "missing email",
			params:  domain.ParticipantParams{Name: "Maria", WhatsApp: "+55"},
			wantErr: apperrors.ErrEmailRequired,
		},
		{
			name:    "malformed email",
			params:  domain.ParticipantParams{Name: "Maria", Email: "not-an-email", WhatsApp: "+55"},
			wantErr: apperrors.ErrEmailInvalid,
		},
		{
			name:    "missing whatsapp",
			params:  domain.ParticipantParams{Name: "Maria", Email: "a@b.com"},
			wantErr: apperrors.ErrWhatsAppRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := domain.NewParticipant(tt.params)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
