package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/mocks"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/services"
)

func newDrawRouter(t *testing.T, roster *mocks.MockParticipantRepository, ledger *mocks.MockDrawLedger) *chi.Mux {
	t.Helper()

	logger := discardLogger()
	svc := services.NewDrawService(roster, ledger, logger)
	handler := NewDrawHandler(svc, NewErrorHandler(logger), logger)

	router := chi.NewRouter()
	handler.RegisterPublicRoutes(router)
	handler.RegisterAdminRoutes(router)
	return router
}

func TestDrawHandler_Generate(t *testing.T) {
	t.Run("records and returns a resolution", func(t *testing.T) {
		roster := mocks.NewMockParticipantRepository()
		ledger := mocks.NewMockDrawLedger()
		roster.On("ListEligible", mock.Anything).Return([]*domain.Participant{
			{ID: 1, Name: "Maria", Email: "maria@example.com"},
			{ID: 2, Name: "João", Email: "joao@example.com"},
			{ID: 3, Name: "Ana", Email: "ana@example.com"},
		}, nil)
		ledger.On("Record", mock.Anything, mock.AnythingOfType("*domain.DrawResolution")).
			Return(int64(8), nil)

		router := newDrawRouter(t, roster, ledger)

		body := `{"totalParticipants":3,"prizeId":2,"prizeName":"Brinde"}`
		req := httptest.NewRequest(stdhttp.MethodPost, "/draws/synchronized", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusCreated, recorder.Code)

		var dto DrawResolutionDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&dto))
		assert.Equal(t, int64(8), dto.ID)
		assert.NotEmpty(t, dto.Seed)
		assert.Equal(t, 3, dto.TotalParticipants)
		assert.Less(t, dto.WinnerIndex, 3)
	})

	t.Run("rejects a non-positive roster size", func(t *testing.T) {
		router := newDrawRouter(t, mocks.NewMockParticipantRepository(), mocks.NewMockDrawLedger())

		req := httptest.NewRequest(stdhttp.MethodPost, "/draws/synchronized", strings.NewReader(`{"totalParticipants":0}`))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestDrawHandler_Lookup(t *testing.T) {
	t.Run("replays a recorded draw", func(t *testing.T) {
		roster := mocks.NewMockParticipantRepository()
		ledger := mocks.NewMockDrawLedger()
		ledger.On("FetchBySeed", mock.Anything, "17545678901231234").Return(&domain.DrawResolution{
			ID:                1,
			Seed:              "17545678901231234",
			WinnerIndex:       5,
			TotalParticipants: 7,
			PrizeName:         "Brinde",
			CreatedAt:         time.Now(),
		}, nil)

		router := newDrawRouter(t, roster, ledger)

		req := httptest.NewRequest(stdhttp.MethodGet, "/draws/synchronized/17545678901231234", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var dto DrawResolutionDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&dto))
		assert.Equal(t, 5, dto.WinnerIndex)
		assert.Equal(t, 7, dto.TotalParticipants)
		assert.NotEmpty(t, dto.CreatedAt)
	})

	t.Run("returns not found for an unknown seed", func(t *testing.T) {
		roster := mocks.NewMockParticipantRepository()
		ledger := mocks.NewMockDrawLedger()
		ledger.On("FetchBySeed", mock.Anything, "999").Return(nil, apperrors.ErrResolutionNotFound)

		router := newDrawRouter(t, roster, ledger)

		req := httptest.NewRequest(stdhttp.MethodGet, "/draws/synchronized/999", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, stdhttp.StatusNotFound, recorder.Code)
	})
}
