package domain

import (
	"regexp"
	"strings"
	"time"

	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
)

const (
	// DefaultChances is the number of spin chances granted on signup.
	DefaultChances = 5
	// ReferralBonus is the number of chances the referrer earns per accepted referral.
	ReferralBonus = 1
	// ReviewBonus is the number of chances earned for leaving a Google review.
	ReviewBonus = 2

	MaxNameLength = 255
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Participant is a person enrolled in the campaign.
type Participant struct {
	ID           int64
	Name         string
	Email        string
	WhatsApp     string
	Chances      int
	Drawn        bool
	ReferredBy   *int64
	RegisteredAt time.Time
}

// ParticipantParams holds the input for creating a participant.
type ParticipantParams struct {
	Name       string
	Email      string
	WhatsApp   string
	ReferredBy *int64
}

// NewParticipant validates the input and builds a participant with the
// default chance balance.
func NewParticipant(params ParticipantParams) (*Participant, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(params.Email)
	whatsapp := strings.TrimSpace(params.WhatsApp)

	if name == "" {
		return nil, apperrors.ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return nil, apperrors.ErrNameTooLong
	}
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return nil, apperrors.ErrEmailInvalid
	}
	if whatsapp == "" {
		return nil, apperrors.ErrWhatsAppRequired
	}

	return &Participant{
		Name:       name,
		Email:      strings.ToLower(email),
		WhatsApp:   whatsapp,
		Chances:    DefaultChances,
		ReferredBy: params.ReferredBy,
	}, nil
}

// ParticipantWithReferrer is the list projection joining each participant to
// the participant who referred them, if any.
type ParticipantWithReferrer struct {
	Participant
	ReferrerName  *string
	ReferrerEmail *string
}

// Review is an audit record of a Google review left by a participant.
type Review struct {
	ID               int64
	ParticipantID    int64
	ParticipantName  string
	ParticipantEmail string
	ReviewedAt       time.Time
}
