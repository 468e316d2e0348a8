package domain

import (
	"strings"
	"time"

	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
)

// DrawResolution is the durable record of one synchronized draw: the seed,
// the index it resolves to, and a denormalized snapshot of the winner and
// prize at resolution time. Rows are append-only; re-fetching by seed must
// always return the same tuple.
type DrawResolution struct {
	ID                  int64
	Seed                string
	WinnerIndex         int
	TotalParticipants   int
	PrizeID             int64
	PrizeName           string
	WinnerParticipantID int64
	WinnerName          string
	WinnerEmail         string
	CreatedAt           time.Time
}

// Validate enforces the index invariant before the resolution is persisted.
func (r *DrawResolution) Validate() error {
	if r.TotalParticipants < 1 {
		return apperrors.ErrInvalidRoster
	}
	if r.WinnerIndex < 0 || r.WinnerIndex >= r.TotalParticipants {
		return apperrors.ErrWinnerIndexOutOfRange
	}
	if r.Seed == "" {
		return apperrors.ErrInvalidSeed
	}
	return nil
}

// SpinKind distinguishes how a history entry was produced.
type SpinKind string

const (
	SpinKindSignup     SpinKind = "signup"
	SpinKindRoulette   SpinKind = "roulette"
	SpinKindScratchOff SpinKind = "scratchcard"
)

// consolationMarkers flag prize names that mean "no win"; spins landing on
// them are acknowledged but never recorded or notified. The campaign's
// wheel labels are Brazilian Portuguese.
var consolationMarkers = []string{
	"não foi dessa vez",
	"tente novamente",
}

// IsConsolationPrize reports whether the prize name denotes a losing slot.
func IsConsolationPrize(prizeName string) bool {
	lowered := strings.ToLower(prizeName)
	for _, marker := range consolationMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// HistoryEntry records one real win handed out by the roulette or
// scratch-card game.
type HistoryEntry struct {
	ID        int64
	Name      string
	Email     string
	WhatsApp  string
	PrizeID   int64
	PrizeName string
	Won       bool
	SpinKind  SpinKind
	DrawnAt   time.Time
}

// RecentWinner is the dashboard projection of a history entry.
type RecentWinner struct {
	Name      string
	PrizeName string
	SpinKind  SpinKind
	DrawnAt   time.Time
}

// DashboardStats aggregates campaign-wide numbers for the admin dashboard.
type DashboardStats struct {
	TotalParticipants int64
	PrizesAwarded     int64
	SpinsPerformed    int64
	RecentWinners     []RecentWinner
}
