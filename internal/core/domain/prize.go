package domain

import (
	"strings"

	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
)

// PrizeKind restricts which game a prize can be won in.
type PrizeKind string

const (
	PrizeKindBoth       PrizeKind = "both"
	PrizeKindRoulette   PrizeKind = "roulette"
	PrizeKindScratchOff PrizeKind = "scratchcard"
)

const (
	DefaultProbability = 20
	DefaultIcon        = "🎁"
)

// Prize is something a participant can win.
type Prize struct {
	ID          int64
	Name        string
	Description string
	Kind        PrizeKind
	Probability int
	Icon        string
	Active      bool
}

// PrizeParams holds the input for creating a prize.
type PrizeParams struct {
	Name        string
	Description string
	Kind        PrizeKind
	Probability int
	Icon        string
	Active      bool
}

// NewPrize validates the input and applies defaults.
func NewPrize(params PrizeParams) (*Prize, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperrors.ErrPrizeNameRequired
	}

	kind := params.Kind
	if kind == "" {
		kind = PrizeKindBoth
	}
	switch kind {
	case PrizeKindBoth, PrizeKindRoulette, PrizeKindScratchOff:
	default:
		return nil, apperrors.ErrPrizeKindInvalid
	}

	probability := params.Probability
	if probability <= 0 {
		probability = DefaultProbability
	}
	if probability > 100 {
		return nil, apperrors.ErrPrizeProbabilityInvalid
	}

	icon := params.Icon
	if icon == "" {
		icon = DefaultIcon
	}

	return &Prize{
		Name:        name,
		Description: params.Description,
		Kind:        kind,
		Probability: probability,
		Icon:        icon,
		Active:      params.Active,
	}, nil
}
