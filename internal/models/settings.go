package models

// Theme is the closed set of UI themes.
type Theme string

const (
	// ThemeLight is the default theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark theme.
	ThemeDark Theme = "dark"
)

// Valid reports whether t is a member of the theme enum.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings holds per-user display preferences. Exactly one row exists
// per user; it is created in the same transaction as the user at signup.
type Settings struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	UserID          uint     `gorm:"uniqueIndex;not null" json:"user_id"`
	DefaultCategory Category `gorm:"type:varchar(10);not null;default:'poetry';check:default_category IN ('poetry','short','novel')" json:"default_category"`
	Theme           Theme    `gorm:"type:varchar(10);not null;default:'light';check:theme IN ('light','dark')" json:"theme"`
}

// TableName specifies the table name for GORM.
func (Settings) TableName() string {
	return "settings"
}
