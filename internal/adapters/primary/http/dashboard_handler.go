package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// DashboardHandler handles HTTP requests for the admin dashboard and the
// webhook self-test.
type DashboardHandler struct {
	dashboard    ports.DashboardService
	notifier     ports.Notifier
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard ports.DashboardService, notifier ports.Notifier, errorHandler *ErrorHandler, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard:    dashboard,
		notifier:     notifier,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "dashboard"),
	}
}

// Router sets up a new chi Router for dashboard routes.
func (h *DashboardHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for dashboard endpoints.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleOverview)
	r.Post("/webhook-test", h.HandleWebhookTest)
}

// RecentWinnerDTO is the dashboard view of a recent win
type RecentWinnerDTO struct {
	Name      string `json:"name"`
	PrizeName string `json:"prizeName"`
	SpinKind  string `json:"spinKind"`
	DrawnAt   string `json:"drawnAt"`
}

// DashboardDTO defines the JSON response for the dashboard overview
type DashboardDTO struct {
	TotalParticipants int64             `json:"totalParticipants"`
	PrizesAwarded     int64             `json:"prizesAwarded"`
	SpinsPerformed    int64             `json:"spinsPerformed"`
	RecentWinners     []RecentWinnerDTO `json:"recentWinners"`
}

// HandleOverview handles GET /dashboard
func (h *DashboardHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Overview(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	winners := make([]RecentWinnerDTO, 0, len(stats.RecentWinners))
	for _, winner := range stats.RecentWinners {
		winners = append(winners, RecentWinnerDTO{
			Name:      winner.Name,
			PrizeName: winner.PrizeName,
			SpinKind:  string(winner.SpinKind),
			DrawnAt:   winner.DrawnAt.Format(time.RFC3339),
		})
	}

	WriteJSON(w, http.StatusOK, DashboardDTO{
		TotalParticipants: stats.TotalParticipants,
		PrizesAwarded:     stats.PrizesAwarded,
		SpinsPerformed:    stats.SpinsPerformed,
		RecentWinners:     winners,
	})
}

// HandleWebhookTest handles POST /dashboard/webhook-test
func (h *DashboardHandler) HandleWebhookTest(w http.ResponseWriter, r *http.Request) {
	if err := h.notifier.SendTest(r.Context()); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{Message: "Test notification sent"})
}
