package repository

import (
	"context"
	"errors"

	"penaura/internal/models"

	"gorm.io/gorm"
)

// SettingsRepository defines persistence operations for per-user settings.
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Settings, error)
	// Update applies the non-nil fields to the user's settings row.
	Update(ctx context.Context, userID uint, category *models.Category, theme *models.Theme) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository returns a new SettingsRepository implementation.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetByUserID returns nil without error when no settings row exists,
// letting the handler serve an empty object.
func (r *settingsRepository) GetByUserID(ctx context.Context, userID uint) (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, userID uint, category *models.Category, theme *models.Theme) error {
	fields := map[string]interface{}{}
	if category != nil {
		fields["default_category"] = *category
	}
	if theme != nil {
		fields["theme"] = *theme
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.Settings{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Settings")
	}
	return nil
}
