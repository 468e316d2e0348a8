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

const maxHistoryLimit = 500

// HistoryHandler handles HTTP requests for spin history
type HistoryHandler struct {
	history      ports.HistoryService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history ports.HistoryService, errorHandler *ErrorHandler, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history:      history,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "history"),
	}
}

// Router sets up a new chi Router covering the full history surface.
func (h *HistoryHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

// RegisterPublicRoutes mounts the spin recording endpoint the game pages
// call after every round.
func (h *HistoryHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/history", h.HandleRecordSpin)
}

// RegisterAdminRoutes mounts the history listing for the admin panel.
func (h *HistoryHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/history", h.HandleList)
}

// --- Request/Response DTOs ---

// RecordSpinRequest defines the expected JSON body for recording a spin
type RecordSpinRequest struct {
	Participant struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		WhatsApp string `json:"whatsapp"`
	} `json:"participant"`
	Prize struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"prize"`
	Kind string `json:"kind"`
}

// Validate validates the record spin request
func (r *RecordSpinRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("participant.name", r.Participant.Name)
	v.Required("prize.name", r.Prize.Name)

	if r.Kind != "" {
		v.OneOf("kind", r.Kind, []string{"signup", "roulette", "scratchcard"})
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SpinResultDTO reports whether the spin produced a persisted win
type SpinResultDTO struct {
	Recorded bool  `json:"recorded"`
	EntryID  int64 `json:"entryId,omitempty"`
}

// HistoryEntryDTO defines the JSON response for history entries.
type HistoryEntryDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	WhatsApp  string `json:"whatsapp"`
	PrizeID   int64  `json:"prizeId,omitempty"`
	PrizeName string `json:"prizeName"`
	Won       bool   `json:"won"`
	SpinKind  string `json:"spinKind"`
	DrawnAt   string `json:"drawnAt"`
}

func toHistoryEntryDTO(entry *domain.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:        entry.ID,
		Name:      entry.Name,
		Email:     entry.Email,
		WhatsApp:  entry.WhatsApp,
		PrizeID:   entry.PrizeID,
		PrizeName: entry.PrizeName,
		Won:       entry.Won,
		SpinKind:  string(entry.SpinKind),
		DrawnAt:   entry.DrawnAt.Format(time.RFC3339),
	}
}

// --- Handlers ---

// HandleRecordSpin handles POST /history
func (h *HistoryHandler) HandleRecordSpin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RecordSpinRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	result, err := h.history.RecordSpin(r.Context(), ports.SpinParams{
		Participant: ports.SpinParticipant{
			Name:     req.Participant.Name,
			Email:    req.Participant.Email,
			WhatsApp: req.Participant.WhatsApp,
		},
		Prize: ports.SpinPrize{
			ID:          req.Prize.ID,
			Name:        req.Prize.Name,
			Description: req.Prize.Description,
			Icon:        req.Prize.Icon,
		},
		Kind: domain.SpinKind(req.Kind),
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Recorded {
		status = http.StatusCreated
	}
	WriteJSON(w, status, SpinResultDTO{Recorded: result.Recorded, EntryID: result.EntryID})
}

// HandleList handles GET /history
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	wonOnly := validation.ParseBoolQueryParam(r, "wonOnly", false)
	limit := validation.ParseIntQueryParam(r, "limit", 100)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := h.history.List(r.Context(), ports.HistoryListParams{
		WonOnly: wonOnly,
		Limit:   limit,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]HistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toHistoryEntryDTO(entry))
	}
	WriteList(w, response)
}
