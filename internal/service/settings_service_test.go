package service

import (
	"context"
	"testing"

	"penaura/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settingsRepoStub is a stub for repository.SettingsRepository.
type settingsRepoStub struct {
	getByUserIDFn func(context.Context, uint) (*models.Settings, error)
	updateFn      func(context.Context, uint, *models.Category, *models.Theme) error
}

func (s *settingsRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Settings, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *settingsRepoStub) Update(ctx context.Context, userID uint, category *models.Category, theme *models.Theme) error {
	return s.updateFn(ctx, userID, category, theme)
}

func strPtr(s string) *string { return &s }

func TestSettingsService_UpdateSettings_EnumValidation(t *testing.T) {
	t.Parallel()

	repo := &settingsRepoStub{
		updateFn: func(_ context.Context, _ uint, _ *models.Category, _ *models.Theme) error {
			t.Fatal("Update should not be called for invalid enums")
			return nil
		},
	}
	svc := NewSettingsService(repo)
	ctx := context.Background()

	err := svc.UpdateSettings(ctx, 1, UpdateSettingsInput{DefaultCategory: strPtr("essay")})
	assertValidationError(t, err)

	err = svc.UpdateSettings(ctx, 1, UpdateSettingsInput{Theme: strPtr("sepia")})
	assertValidationError(t, err)
}

func TestSettingsService_UpdateSettings_Partial(t *testing.T) {
	t.Parallel()

	var gotCategory *models.Category
	var gotTheme *models.Theme
	repo := &settingsRepoStub{
		updateFn: func(_ context.Context, userID uint, category *models.Category, theme *models.Theme) error {
			assert.Equal(t, uint(1), userID)
			gotCategory, gotTheme = category, theme
			return nil
		},
	}
	svc := NewSettingsService(repo)

	err := svc.UpdateSettings(context.Background(), 1, UpdateSettingsInput{Theme: strPtr("dark")})
	require.NoError(t, err)
	assert.Nil(t, gotCategory)
	require.NotNil(t, gotTheme)
	assert.Equal(t, models.ThemeDark, *gotTheme)
}

func TestSettingsService_GetSettings(t *testing.T) {
	t.Parallel()

	repo := &settingsRepoStub{
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Settings, error) {
			return &models.Settings{UserID: userID, DefaultCategory: models.CategoryPoetry, Theme: models.ThemeLight}, nil
		},
	}
	svc := NewSettingsService(repo)

	settings, err := svc.GetSettings(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPoetry, settings.DefaultCategory)
	assert.Equal(t, models.ThemeLight, settings.Theme)
}
