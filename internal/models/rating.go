package models

import "time"

// RatingMin and RatingMax bound the accepted rating values.
const (
	RatingMin = 1
	RatingMax = 5
)

// Rating represents a user's 1-5 star rating of a post.
// The combination of UserID and PostID must be unique; a resubmission
// overwrites the previous value instead of adding a row.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_post" json:"post_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// RatingSummary is the derived aggregate for a post, recomputed from
// the live rating rows on every read.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	VoteCount     int     `json:"voteCount"`
}
