package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/validation"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// DrawHandler handles HTTP requests for synchronized draws
type DrawHandler struct {
	draws        ports.DrawService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewDrawHandler creates a new draw handler
func NewDrawHandler(draws ports.DrawService, errorHandler *ErrorHandler, logger *slog.Logger) *DrawHandler {
	return &DrawHandler{
		draws:        draws,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "draw"),
	}
}

// Router sets up a new chi Router covering the full draw surface.
func (h *DrawHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

// RegisterPublicRoutes mounts the seed lookup so client screens can replay
// a draw they missed.
func (h *DrawHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/draws/synchronized/{seed}", h.HandleLookup)
}

// RegisterAdminRoutes mounts the explicit draw trigger.
func (h *DrawHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/draws/synchronized", h.HandleGenerate)
}

// GenerateDrawRequest defines the expected JSON body for an explicit draw
type GenerateDrawRequest struct {
	TotalParticipants int    `json:"totalParticipants"`
	PrizeID           int64  `json:"prizeId"`
	PrizeName         string `json:"prizeName"`
}

// Validate validates the generate draw request
func (r *GenerateDrawRequest) Validate() error {
	v := validation.NewValidator()

	v.Min("totalParticipants", r.TotalParticipants, 1)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// DrawResolutionDTO defines the JSON response for a recorded draw.
type DrawResolutionDTO struct {
	ID                  int64  `json:"id"`
	Seed                string `json:"seed"`
	WinnerIndex         int    `json:"winnerIndex"`
	TotalParticipants   int    `json:"totalParticipants"`
	PrizeID             int64  `json:"prizeId,omitempty"`
	PrizeName           string `json:"prizeName"`
	WinnerParticipantID int64  `json:"winnerParticipantId,omitempty"`
	WinnerName          string `json:"winnerName,omitempty"`
	WinnerEmail         string `json:"winnerEmail,omitempty"`
	CreatedAt           string `json:"createdAt,omitempty"`
}

func toDrawResolutionDTO(res *domain.DrawResolution) DrawResolutionDTO {
	dto := DrawResolutionDTO{
		ID:                  res.ID,
		Seed:                res.Seed,
		WinnerIndex:         res.WinnerIndex,
		TotalParticipants:   res.TotalParticipants,
		PrizeID:             res.PrizeID,
		PrizeName:           res.PrizeName,
		WinnerParticipantID: res.WinnerParticipantID,
		WinnerName:          res.WinnerName,
		WinnerEmail:         res.WinnerEmail,
	}
	if !res.CreatedAt.IsZero() {
		dto.CreatedAt = res.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

// HandleGenerate handles POST /draws/synchronized
func (h *DrawHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[GenerateDrawRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	resolution, err := h.draws.GenerateSynchronized(r.Context(), ports.GenerateDrawParams{
		TotalParticipants: req.TotalParticipants,
		PrizeID:           req.PrizeID,
		PrizeName:         req.PrizeName,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, toDrawResolutionDTO(resolution))
}

// HandleLookup handles GET /draws/synchronized/{seed}
func (h *DrawHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	seed := chi.URLParam(r, "seed")

	resolution, err := h.draws.ResolutionBySeed(r.Context(), seed)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toDrawResolutionDTO(resolution))
}
