package service

import (
	"context"

	"penaura/internal/models"
	"penaura/internal/repository"
)

// SettingsService implements per-user preference reads and writes.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService returns a new SettingsService.
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the user's settings, or nil when none exist.
func (s *SettingsService) GetSettings(ctx context.Context, userID uint) (*models.Settings, error) {
	return s.settingsRepo.GetByUserID(ctx, userID)
}

// UpdateSettingsInput carries the optional settings fields; nil means
// "leave unchanged".
type UpdateSettingsInput struct {
	DefaultCategory *string
	Theme           *string
}

// UpdateSettings applies a partial update. Values outside the enums are
// rejected instead of silently persisted.
func (s *SettingsService) UpdateSettings(ctx context.Context, userID uint, in UpdateSettingsInput) error {
	var category *models.Category
	if in.DefaultCategory != nil {
		c := models.Category(*in.DefaultCategory)
		if !c.Valid() {
			return models.NewValidationError("default_category must be poetry, short, or novel")
		}
		category = &c
	}

	var theme *models.Theme
	if in.Theme != nil {
		t := models.Theme(*in.Theme)
		if !t.Valid() {
			return models.NewValidationError("theme must be light or dark")
		}
		theme = &t
	}

	return s.settingsRepo.Update(ctx, userID, category, theme)
}
