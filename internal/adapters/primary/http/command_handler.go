package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/validation"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// CommandHandler handles the admin command dispatch surface: sending a
// command to every connected client, the polling fallback, and clearing the
// pending slot.
type CommandHandler struct {
	dispatch     ports.DispatchService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(dispatch ports.DispatchService, errorHandler *ErrorHandler, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		dispatch:     dispatch,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "command"),
	}
}

// Router sets up a new chi Router covering the full command surface.
func (h *CommandHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

// RegisterPublicRoutes mounts the endpoints campaign pages poll. Pending and
// clear stay open because the overlay clients carry no credentials.
func (h *CommandHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/commands/pending", h.HandlePending)
	r.Post("/commands/clear", h.HandleClear)
}

// RegisterAdminRoutes mounts the dispatch endpoint for the admin panel.
func (h *CommandHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/commands", h.HandleDispatch)
}

// DispatchRequest defines the expected JSON body for dispatching a command
type DispatchRequest struct {
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload"`
	PrizeID   int64          `json:"prizeId"`
	PrizeName string         `json:"prizeName"`
}

// Validate validates the dispatch request
func (r *DispatchRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("kind", r.Kind)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// PendingResponse wraps the polling fallback result
type PendingResponse struct {
	Command *domain.Command `json:"command"`
}

// HandleDispatch handles POST /commands
func (h *CommandHandler) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[DispatchRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	result, err := h.dispatch.Dispatch(r.Context(), ports.DispatchParams{
		Kind:      domain.CommandKind(req.Kind),
		Payload:   req.Payload,
		PrizeID:   req.PrizeID,
		PrizeName: req.PrizeName,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// HandlePending handles GET /commands/pending. It is the polling fallback
// for clients without a live connection; peeking arms the expiry timer.
func (h *CommandHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.dispatch.Pending()
	if !ok {
		WriteJSON(w, http.StatusOK, PendingResponse{Command: nil})
		return
	}
	WriteJSON(w, http.StatusOK, PendingResponse{Command: &cmd})
}

// HandleClear handles POST /commands/clear
func (h *CommandHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.dispatch.Clear()
	WriteNoContent(w)
}
