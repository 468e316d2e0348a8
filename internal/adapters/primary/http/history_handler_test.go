package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/mocks"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/services"
)

func newHistoryRouter(t *testing.T, repo *mocks.MockHistoryRepository) *chi.Mux {
	t.Helper()

	logger := discardLogger()
	notifier := mocks.NewMockNotifier()
	notifier.On("NotifyPrizeWin", mock.Anything, mock.Anything).Return().Maybe()

	svc := services.NewHistoryService(repo, notifier, logger)
	handler := NewHistoryHandler(svc, NewErrorHandler(logger), logger)

	router := chi.NewRouter()
	handler.RegisterPublicRoutes(router)
	handler.RegisterAdminRoutes(router)
	return router
}

func TestHistoryHandler_RecordSpin(t *testing.T) {
	t.Run("persisted win returns created", func(t *testing.T) {
		repo := mocks.NewMockHistoryRepository()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.HistoryEntry")).
			Return(int64(14), nil)

		router := newHistoryRouter(t, repo)

		body := `{
			"participant":{"name":"Maria","email":"maria@example.com","whatsapp":"+5511999990000"},
			"prize":{"id":2,"name":"10% de desconto"},
			"kind":"scratchcard"
		}`
		req := httptest.NewRequest(stdhttp.MethodPost, "/history", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusCreated, recorder.Code)

		var result SpinResultDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&result))
		assert.True(t, result.Recorded)
		assert.Equal(t, int64(14), result.EntryID)
	})

	t.Run("consolation spin is acknowledged without persisting", func(t *testing.T) {
		repo := mocks.NewMockHistoryRepository()
		router := newHistoryRouter(t, repo)

		body := `{
			"participant":{"name":"Maria"},
			"prize":{"name":"Não foi dessa vez"}
		}`
		req := httptest.NewRequest(stdhttp.MethodPost, "/history", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusOK, recorder.Code)

		var result SpinResultDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&result))
		assert.False(t, result.Recorded)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects an unknown spin kind", func(t *testing.T) {
		router := newHistoryRouter(t, mocks.NewMockHistoryRepository())

		body := `{
			"participant":{"name":"Maria"},
			"prize":{"name":"Brinde"},
			"kind":"bingo"
		}`
		req := httptest.NewRequest(stdhttp.MethodPost, "/history", strings.NewReader(body))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestHistoryHandler_List(t *testing.T) {
	repo := mocks.NewMockHistoryRepository()
	repo.On("List", mock.Anything, ports.HistoryListParams{WonOnly: true, Limit: 100}).
		Return([]*domain.HistoryEntry{
			{ID: 1, Name: "Maria", PrizeName: "Brinde", Won: true, SpinKind: domain.SpinKindRoulette},
		}, nil)

	router := newHistoryRouter(t, repo)

	req := httptest.NewRequest(stdhttp.MethodGet, "/history?wonOnly=true", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response ListResponse[HistoryEntryDTO]
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}
