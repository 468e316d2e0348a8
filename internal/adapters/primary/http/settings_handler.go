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

// SettingsHandler handles HTTP requests for the key/value settings
type SettingsHandler struct {
	settings     ports.SettingsService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings ports.SettingsService, errorHandler *ErrorHandler, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings:     settings,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "settings"),
	}
}

// Router sets up a new chi Router for settings routes.
func (h *SettingsHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for settings endpoints.
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Put("/", h.HandleUpdate)
}

// UpdateSettingsRequest maps setting keys to their new values
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

// Validate validates the update settings request
func (r *UpdateSettingsRequest) Validate() error {
	v := validation.NewValidator()

	v.Custom("settings", len(r.Settings) > 0, "At least one setting is required")

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SettingDTO defines the JSON response for a setting row.
type SettingDTO struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func toSettingDTO(setting domain.Setting) SettingDTO {
	dto := SettingDTO{
		Key:   setting.Key,
		Value: setting.Value,
	}
	if !setting.UpdatedAt.IsZero() {
		dto.UpdatedAt = setting.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

// HandleList handles GET /settings
func (h *SettingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.List(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]SettingDTO, 0, len(settings))
	for _, setting := range settings {
		response = append(response, toSettingDTO(setting))
	}
	WriteList(w, response)
}

// HandleUpdate handles PUT /settings
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[UpdateSettingsRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.settings.Update(r.Context(), req.Settings); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{Message: "Settings updated"})
}
