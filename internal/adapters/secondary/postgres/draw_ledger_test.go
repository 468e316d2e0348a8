package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

func newDrawLedger(t *testing.T) ports.DrawLedger {
	require.NotNil(t, testPool, "testPool is nil. TestMain may not have run.")
	return NewDrawLedger(testPool)
}

func TestDrawLedger_RecordFetch(t *testing.T) {
	ctx := context.Background()
	ledger := newDrawLedger(t)
	repo := newParticipantRepo(t)

	winner := newTestParticipant(t, repo, "Vencedora")

	seed := fmt.Sprintf("%d%d", time.Now().UnixMilli(), contactSeq.Add(1))
	resolution := &domain.DrawResolution{
		Seed:                seed,
		WinnerIndex:         2,
		TotalParticipants:   7,
		PrizeName:           "Vale-compras",
		WinnerParticipantID: winner.ID,
		WinnerName:          winner.Name,
		WinnerEmail:         winner.Email,
	}

	id, err := ledger.Record(ctx, resolution)
	require.NoError(t, err, "Failed to record resolution")
	assert.NotZero(t, id)
	assert.Equal(t, id, resolution.ID)
	assert.False(t, resolution.CreatedAt.IsZero())

	found, err := ledger.FetchBySeed(ctx, seed)
	require.NoError(t, err, "Failed to fetch resolution by seed")
	assert.Equal(t, id, found.ID)
	assert.Equal(t, seed, found.Seed)
	assert.Equal(t, 2, found.WinnerIndex)
	assert.Equal(t, 7, found.TotalParticipants)
	assert.Equal(t, "Vale-compras", found.PrizeName)
	assert.Equal(t, winner.ID, found.WinnerParticipantID)
	assert.Equal(t, winner.Name, found.WinnerName)
	assert.Equal(t, winner.Email, found.WinnerEmail)
}

func TestDrawLedger_FetchBySeed_NotFound(t *testing.T) {
	ctx := context.Background()
	ledger := newDrawLedger(t)

	_, err := ledger.FetchBySeed(ctx, "17000000000000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrResolutionNotFound)
}

func TestDrawLedger_FetchBySeed_LatestWins(t *testing.T) {
	ctx := context.Background()
	ledger := newDrawLedger(t)

	seed := fmt.Sprintf("%d%d", time.Now().UnixMilli(), contactSeq.Add(1))

	_, err := ledger.Record(ctx, &domain.DrawResolution{
		Seed:              seed,
		WinnerIndex:       0,
		TotalParticipants: 3,
	})
	require.NoError(t, err)

	// created_at breaks the tie between rows sharing a seed.
	time.Sleep(10 * time.Millisecond)

	latest, err := ledger.Record(ctx, &domain.DrawResolution{
		Seed:              seed,
		WinnerIndex:       1,
		TotalParticipants: 3,
	})
	require.NoError(t, err)

	found, err := ledger.FetchBySeed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, latest, found.ID)
	assert.Equal(t, 1, found.WinnerIndex)
}

func TestDrawLedger_Record_RejectsInvalidIndex(t *testing.T) {
	ctx := context.Background()
	ledger := newDrawLedger(t)

	seed := fmt.Sprintf("%d%d", time.Now().UnixMilli(), contactSeq.Add(1))

	// The table enforces winner_index < total_participants.
	_, err := ledger.Record(ctx, &domain.DrawResolution{
		Seed:              seed,
		WinnerIndex:       5,
		TotalParticipants: 3,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	_, err = ledger.FetchBySeed(ctx, seed)
	assert.ErrorIs(t, err, apperrors.ErrResolutionNotFound)
}
