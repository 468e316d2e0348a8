package http

import (
	"errors"
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

// ScheduleHandler handles HTTP requests for scheduled draws and
// scratch-card windows. Both kinds share one handler; the chi route decides
// which table the request targets.
type ScheduleHandler struct {
	schedules    ports.ScheduleService
	kind         ports.ScheduleKind
	basePath     string
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewScheduleHandler creates a new schedule handler bound to one kind
func NewScheduleHandler(schedules ports.ScheduleService, kind ports.ScheduleKind, errorHandler *ErrorHandler, logger *slog.Logger) *ScheduleHandler {
	basePath := "/schedules"
	if kind == ports.ScheduleKindScratchOff {
		basePath = "/scratchcards"
	}
	return &ScheduleHandler{
		schedules:    schedules,
		kind:         kind,
		basePath:     basePath,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "schedule", "kind", string(kind)),
	}
}

// Router sets up a new chi Router covering the full schedule surface.
func (h *ScheduleHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

// RegisterPublicRoutes mounts the active window lookup; client screens
// poll it to decide whether the game is open.
func (h *ScheduleHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get(h.basePath+"/active", h.HandleActiveNow)
}

// RegisterAdminRoutes mounts the schedule management endpoints.
func (h *ScheduleHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get(h.basePath, h.HandleList)
	r.Post(h.basePath, h.HandleCreate)
	r.Patch(h.basePath+"/{scheduleID}/status", h.HandleUpdateStatus)
	r.Delete(h.basePath+"/{scheduleID}", h.HandleDelete)
}

// --- Request/Response DTOs ---

// CreateScheduleRequest defines the expected JSON body for creating a schedule
type CreateScheduleRequest struct {
	Date         string               `json:"date"`
	StartTime    string               `json:"startTime"`
	EndTime      string               `json:"endTime"`
	PrizeWindows []domain.PrizeWindow `json:"prizeWindows"`
}

// Validate validates the create schedule request
func (r *CreateScheduleRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("date", r.Date)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateScheduleStatusRequest defines the expected JSON body for status updates
type UpdateScheduleStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the update status request
func (r *UpdateScheduleStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"pending", "active", "completed", "cancelled"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// ScheduleDTO defines the JSON response for schedules.
type ScheduleDTO struct {
	ID           int64                `json:"id"`
	Date         string               `json:"date"`
	StartTime    string               `json:"startTime"`
	EndTime      string               `json:"endTime"`
	PrizeWindows []domain.PrizeWindow `json:"prizeWindows"`
	Status       string               `json:"status"`
	CreatedAt    string               `json:"createdAt,omitempty"`
}

// ActiveWindowDTO is the public view of the window currently open.
type ActiveWindowDTO struct {
	Active       bool                 `json:"active"`
	Schedule     *ScheduleDTO         `json:"schedule,omitempty"`
	ActivePrizes []domain.PrizeWindow `json:"activePrizes,omitempty"`
}

func toScheduleDTO(schedule *domain.Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:           schedule.ID,
		Date:         schedule.Date,
		StartTime:    schedule.StartTime,
		EndTime:      schedule.EndTime,
		PrizeWindows: schedule.PrizeWindows,
		Status:       string(schedule.Status),
	}
	if !schedule.CreatedAt.IsZero() {
		dto.CreatedAt = schedule.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

// --- Handlers ---

// HandleList handles GET /
func (h *ScheduleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var status *domain.ScheduleStatus
	if raw := validation.ParseStringQueryParam(r, "status"); raw != nil {
		s := domain.ScheduleStatus(*raw)
		status = &s
	}

	schedules, err := h.schedules.List(r.Context(), h.kind, status)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]ScheduleDTO, 0, len(schedules))
	for _, schedule := range schedules {
		response = append(response, toScheduleDTO(schedule))
	}
	WriteList(w, response)
}

// HandleCreate handles POST /
func (h *ScheduleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateScheduleRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	schedule, err := h.schedules.Create(r.Context(), h.kind, domain.ScheduleParams{
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		PrizeWindows: req.PrizeWindows,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, toScheduleDTO(schedule))
}

// HandleActiveNow handles GET /active
func (h *ScheduleHandler) HandleActiveNow(w http.ResponseWriter, r *http.Request) {
	window, err := h.schedules.ActiveNow(r.Context(), h.kind)
	if err != nil {
		if errors.Is(err, apperrors.ErrScheduleNotFound) {
			WriteJSON(w, http.StatusOK, ActiveWindowDTO{Active: false})
			return
		}
		h.errorHandler.Handle(w, r, err)
		return
	}

	dto := toScheduleDTO(window.Schedule)
	WriteJSON(w, http.StatusOK, ActiveWindowDTO{
		Active:       true,
		Schedule:     &dto,
		ActivePrizes: window.ActivePrizes,
	})
}

// HandleUpdateStatus handles PATCH /{scheduleID}/status
func (h *ScheduleHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseScheduleID(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[UpdateScheduleStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.schedules.UpdateStatus(r.Context(), h.kind, id, domain.ScheduleStatus(req.Status)); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{Message: "Status updated"})
}

// HandleDelete handles DELETE /{scheduleID}
func (h *ScheduleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseScheduleID(w, r)
	if !ok {
		return
	}

	if err := h.schedules.Delete(r.Context(), h.kind, id); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}

func (h *ScheduleHandler) parseScheduleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "scheduleID"), 10, 64)
	if err != nil || id <= 0 {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid schedule ID"))
		return 0, false
	}
	return id, true
}
