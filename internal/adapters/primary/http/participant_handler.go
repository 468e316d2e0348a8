package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/validation"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// ParticipantHandler handles HTTP requests for participants
type ParticipantHandler struct {
	participants ports.ParticipantService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(participants ports.ParticipantService, errorHandler *ErrorHandler, logger *slog.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		participants: participants,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "participant"),
	}
}

// Router sets up a new chi Router covering the full participant surface.
func (h *ParticipantHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

// RegisterPublicRoutes mounts the endpoints the campaign landing page uses:
// signing up, registering referrals, and claiming the review bonus.
func (h *ParticipantHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/participants", h.HandleSignUp)
	r.Post("/participants/{participantID}/referrals", h.HandleRegisterReferrals)
	r.Post("/participants/{participantID}/review", h.HandleRecordReview)
}

// RegisterAdminRoutes mounts the management endpoints for the admin panel.
func (h *ParticipantHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/participants", h.HandleList)
	r.Get("/participants/eligible", h.HandleListEligible)
	r.Delete("/participants/{participantID}", h.HandleDelete)
	r.Get("/participants/{participantID}/referrals", h.HandleListReferrals)
}

// --- Request/Response DTOs ---

// SignUpRequest defines the expected JSON body for participant signup
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// Validate validates the signup request
func (r *SignUpRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("name", r.Name).
		MaxLength("name", r.Name, domain.MaxNameLength)

	v.Required("email", r.Email).
		Email("email", r.Email)

	v.Required("whatsapp", r.WhatsApp)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// ReferralEntryDTO is one referred person in a referral batch
type ReferralEntryDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// RegisterReferralsRequest defines the expected JSON body for a referral batch
type RegisterReferralsRequest struct {
	Referrals []ReferralEntryDTO `json:"referrals"`
}

// Validate validates the referral batch request
func (r *RegisterReferralsRequest) Validate() error {
	v := validation.NewValidator()

	v.Custom("referrals", len(r.Referrals) > 0, "At least one referral is required")

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// ReferralBatchResponse reports the outcome of a referral batch
type ReferralBatchResponse struct {
	Saved         int      `json:"saved"`
	ChancesEarned int      `json:"chancesEarned"`
	Rejected      []string `json:"rejected,omitempty"`
}

// ParticipantDTO defines the JSON response for participants.
type ParticipantDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	WhatsApp     string `json:"whatsapp"`
	Chances      int    `json:"chances"`
	Drawn        bool   `json:"drawn"`
	ReferredBy   *int64 `json:"referredBy,omitempty"`
	RegisteredAt string `json:"registeredAt"`
}

// ParticipantWithReferrerDTO adds the referrer snapshot to the listing.
type ParticipantWithReferrerDTO struct {
	ParticipantDTO
	ReferrerName  *string `json:"referrerName,omitempty"`
	ReferrerEmail *string `json:"referrerEmail,omitempty"`
}

func toParticipantDTO(p *domain.Participant) ParticipantDTO {
	return ParticipantDTO{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		WhatsApp:     p.WhatsApp,
		Chances:      p.Chances,
		Drawn:        p.Drawn,
		ReferredBy:   p.ReferredBy,
		RegisteredAt: p.RegisteredAt.Format(time.RFC3339),
	}
}

func toParticipantDTOs(participants []*domain.Participant) []ParticipantDTO {
	response := make([]ParticipantDTO, 0, len(participants))
	for _, p := range participants {
		response = append(response, toParticipantDTO(p))
	}
	return response
}

// --- Handlers ---

// HandleSignUp handles POST /participants
func (h *ParticipantHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[SignUpRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	participant, err := h.participants.SignUp(r.Context(), ports.SignUpParams{
		Name:     req.Name,
		Email:    req.Email,
		WhatsApp: req.WhatsApp,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, toParticipantDTO(participant))
}

// HandleList handles GET /participants
func (h *ParticipantHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	withReferrers := validation.ParseBoolQueryParam(r, "withReferrers", false)

	if withReferrers {
		participants, err := h.participants.ListWithReferrers(r.Context())
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}

		response := make([]ParticipantWithReferrerDTO, 0, len(participants))
		for _, p := range participants {
			response = append(response, ParticipantWithReferrerDTO{
				ParticipantDTO: toParticipantDTO(&p.Participant),
				ReferrerName:   p.ReferrerName,
				ReferrerEmail:  p.ReferrerEmail,
			})
		}
		WriteList(w, response)
		return
	}

	participants, err := h.participants.List(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toParticipantDTOs(participants))
}

// HandleListEligible handles GET /participants/eligible. The order of this
// roster is what winner indexes in synchronized draws refer to.
func (h *ParticipantHandler) HandleListEligible(w http.ResponseWriter, r *http.Request) {
	participants, err := h.participants.ListEligible(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toParticipantDTOs(participants))
}

// HandleDelete handles DELETE /participants/{participantID}
func (h *ParticipantHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParticipantID(w, r)
	if !ok {
		return
	}

	if err := h.participants.Delete(r.Context(), id); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}

// HandleRegisterReferrals handles POST /participants/{participantID}/referrals
func (h *ParticipantHandler) HandleRegisterReferrals(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParticipantID(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[RegisterReferralsRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	entries := make([]ports.ReferralEntry, 0, len(req.Referrals))
	for _, e := range req.Referrals {
		entries = append(entries, ports.ReferralEntry{
			Name:     e.Name,
			Email:    e.Email,
			WhatsApp: e.WhatsApp,
		})
	}

	result, err := h.participants.RegisterReferrals(r.Context(), ports.ReferralBatchParams{
		ReferrerID: id,
		Entries:    entries,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, ReferralBatchResponse{
		Saved:         result.Saved,
		ChancesEarned: result.ChancesEarned,
		Rejected:      result.Rejected,
	})
}

// HandleListReferrals handles GET /participants/{participantID}/referrals
func (h *ParticipantHandler) HandleListReferrals(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParticipantID(w, r)
	if !ok {
		return
	}

	referrals, err := h.participants.ListReferrals(r.Context(), id)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toParticipantDTOs(referrals))
}

// HandleRecordReview handles POST /participants/{participantID}/review
func (h *ParticipantHandler) HandleRecordReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParticipantID(w, r)
	if !ok {
		return
	}

	if err := h.participants.RecordReview(r.Context(), ports.ReviewParams{ParticipantID: id}); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{Message: "Review bonus granted"})
}

func (h *ParticipantHandler) parseParticipantID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "participantID"), 10, 64)
	if err != nil || id <= 0 {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid participant ID"))
		return 0, false
	}
	return id, true
}
