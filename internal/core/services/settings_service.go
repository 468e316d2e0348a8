package services

import (
	"context"
	"log/slog"

	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/domain"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
)

// SettingsService exposes the key/value configuration rows.
type SettingsService struct {
	settings ports.SettingsRepository
	logger   *slog.Logger
}

var _ ports.SettingsService = (*SettingsService)(nil)

// NewSettingsService creates a new settings service.
func NewSettingsService(settings ports.SettingsRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		logger:   logger.With("component", "settings_service"),
	}
}

// List returns every setting row.
func (s *SettingsService) List(ctx context.Context) ([]domain.Setting, error) {
	return s.settings.List(ctx)
}

// Update upserts every key in values.
func (s *SettingsService) Update(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if err := s.settings.Upsert(ctx, key, value); err != nil {
			return err
		}
	}
	s.logger.Info("settings updated", "keys", len(values))
	return nil
}
