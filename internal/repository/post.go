// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"penaura/internal/cache"
	"penaura/internal/models"
	"penaura/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post and rating data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	// UpdateOwned applies the fields only when the post exists AND belongs
	// to userID; the two failure cases are indistinguishable by design.
	UpdateOwned(ctx context.Context, postID, userID uint, title string, category models.Category, content string) error
	// DeleteOwned removes the post with the same ownership guard.
	DeleteOwned(ctx context.Context, postID, userID uint) error
	// Rate upserts the (userID, postID) rating row.
	Rate(ctx context.Context, userID, postID uint, value int) error
	GetRatingSummary(ctx context.Context, postID uint) (*models.RatingSummary, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails selects the author name and live rating aggregates in
// the same statement as the post row, so a concurrent rating upsert can
// never produce a torn average/count pair.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT name FROM users WHERE users.id = posts.user_id) AS author, " +
		"COALESCE((SELECT ROUND(AVG(ratings.rating), 2) FROM ratings WHERE ratings.post_id = posts.id), 0) AS avg_rating, " +
		"(SELECT COUNT(*) FROM ratings WHERE ratings.post_id = posts.id) AS total_votes")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.applyPostDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx)).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) UpdateOwned(ctx context.Context, postID, userID uint, title string, category models.Category, content string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND user_id = ?", postID, userID).
		Updates(map[string]interface{}{
			"title":    title,
			"category": category,
			"content":  content,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) DeleteOwned(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		Delete(&models.Post{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) Rate(ctx context.Context, userID, postID uint, value int) error {
	defer observability.TrackQuery("upsert", "ratings")()

	// INSERT ... ON CONFLICT DO UPDATE keeps one row per (user, post) and
	// is atomic under concurrent submissions. The same syntax works on
	// PostgreSQL and SQLite.
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO ratings (user_id, post_id, rating, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO UPDATE SET rating = excluded.rating`,
		userID, postID, value,
	)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	observability.RatingsSubmitted.Inc()
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) GetRatingSummary(ctx context.Context, postID uint) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	// Single statement: average and count come from the same snapshot.
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(ROUND(AVG(rating), 2), 0) AS average_rating,
		        COUNT(*) AS vote_count
		 FROM ratings WHERE post_id = ?`,
		postID,
	).Scan(&summary).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &summary, nil
}
