package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/validation"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// PrizeHandler handles HTTP requests for the prize catalogue
type PrizeHandler struct {
	prizes       ports.PrizeService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewPrizeHandler creates a new prize handler
func NewPrizeHandler(prizes ports.PrizeService, errorHandler *ErrorHandler, logger *slog.Logger) *PrizeHandler {
	return &PrizeHandler{
		prizes:       prizes,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "prize"),
	}
}

// Router sets up a new chi Router covering the full prize surface.
func (h *PrizeHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

// RegisterPublicRoutes mounts the listing endpoint the wheel and scratch
// pages load their prize tables from.
func (h *PrizeHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/prizes", h.HandleList)
}

// RegisterAdminRoutes mounts the prize management endpoints.
func (h *PrizeHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/prizes", h.HandleCreate)
	r.Put("/prizes/{prizeID}", h.HandleUpdate)
	r.Delete("/prizes/{prizeID}", h.HandleDelete)
}

// --- Request/Response DTOs ---

// CreatePrizeRequest defines the expected JSON body for creating a prize
type CreatePrizeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Probability int    `json:"probability"`
	Icon        string `json:"icon"`
	Active      bool   `json:"active"`
}

// Validate validates the create prize request
func (r *CreatePrizeRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("name", r.Name)

	if r.Kind != "" {
		v.OneOf("kind", r.Kind, []string{"both", "roulette", "scratchcard"})
	}
	if r.Probability != 0 {
		v.Range("probability", r.Probability, 1, 100)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdatePrizeRequest defines the expected JSON body for updating a prize.
// Omitted fields leave the stored value untouched.
type UpdatePrizeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Kind        *string `json:"kind"`
	Probability *int    `json:"probability"`
	Icon        *string `json:"icon"`
	Active      *bool   `json:"active"`
}

// Validate validates the update prize request
func (r *UpdatePrizeRequest) Validate() error {
	v := validation.NewValidator()

	if r.Name != nil {
		v.Required("name", *r.Name)
	}
	if r.Kind != nil {
		v.OneOf("kind", *r.Kind, []string{"both", "roulette", "scratchcard"})
	}
	if r.Probability != nil {
		v.Range("probability", *r.Probability, 1, 100)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// PrizeDTO defines the JSON response for prizes.
type PrizeDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Probability int    `json:"probability"`
	Icon        string `json:"icon"`
	Active      bool   `json:"active"`
}

func toPrizeDTO(prize *domain.Prize) PrizeDTO {
	return PrizeDTO{
		ID:          prize.ID,
		Name:        prize.Name,
		Description: prize.Description,
		Kind:        string(prize.Kind),
		Probability: prize.Probability,
		Icon:        prize.Icon,
		Active:      prize.Active,
	}
}

func toPrizeDTOs(prizes []*domain.Prize) []PrizeDTO {
	response := make([]PrizeDTO, 0, len(prizes))
	for _, prize := range prizes {
		response = append(response, toPrizeDTO(prize))
	}
	return response
}

// --- Handlers ---

// HandleList handles GET /prizes. With ?active=true only prizes in play are
// returned; that is the view the public wheel uses.
func (h *PrizeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := validation.ParseBoolQueryParam(r, "active", false)

	var (
		prizes []*domain.Prize
		err    error
	)
	if activeOnly {
		prizes, err = h.prizes.ListActive(r.Context())
	} else {
		prizes, err = h.prizes.List(r.Context())
	}
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toPrizeDTOs(prizes))
}

// HandleCreate handles POST /prizes
func (h *PrizeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreatePrizeRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	prize, err := h.prizes.Create(r.Context(), domain.PrizeParams{
		Name:        req.Name,
		Description: req.Description,
		Kind:        domain.PrizeKind(req.Kind),
		Probability: req.Probability,
		Icon:        req.Icon,
		Active:      req.Active,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, toPrizeDTO(prize))
}

// HandleUpdate handles PUT /prizes/{prizeID}
func (h *PrizeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parsePrizeID(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[UpdatePrizeRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.PrizeUpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Probability: req.Probability,
		Icon:        req.Icon,
		Active:      req.Active,
	}
	if req.Kind != nil {
		kind := domain.PrizeKind(*req.Kind)
		params.Kind = &kind
	}

	prize, err := h.prizes.Update(r.Context(), id, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toPrizeDTO(prize))
}

// HandleDelete handles DELETE /prizes/{prizeID}
func (h *PrizeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parsePrizeID(w, r)
	if !ok {
		return
	}

	if err := h.prizes.Delete(r.Context(), id); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}

func (h *PrizeHandler) parsePrizeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "prizeID"), 10, 64)
	if err != nil || id <= 0 {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid prize ID"))
		return 0, false
	}
	return id, true
}
