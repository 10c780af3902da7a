package models

import "time"

// Category is the closed set of post categories.
type Category string

const (
	// CategoryPoetry is the default category for new posts and settings.
	CategoryPoetry Category = "poetry"
	// CategoryShort marks short stories.
	CategoryShort Category = "short"
	// CategoryNovel marks serialized novel chapters.
	CategoryNovel Category = "novel"
)

// Valid reports whether c is a member of the category enum.
func (c Category) Valid() bool {
	switch c {
	case CategoryPoetry, CategoryShort, CategoryNovel:
		return true
	}
	return false
}

// Post represents a published text in the Penaura application.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	UserID   uint     `gorm:"not null;index" json:"user_id"`
	Title    string   `gorm:"size:300;not null" json:"title"`
	Category Category `gorm:"type:varchar(10);not null;check:category IN ('poetry','short','novel')" json:"category"`
	Content  string   `gorm:"type:text;not null" json:"content"`

	// Author is the post owner's display name; computed at query time, never persisted.
	Author string `gorm:"->" json:"author"`
	// AvgRating is the mean of all rating rows rounded to 2 decimals (computed).
	AvgRating float64 `gorm:"->" json:"avg_rating"`
	// TotalVotes is the number of rating rows for the post (computed).
	TotalVotes int `gorm:"->" json:"total_votes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
