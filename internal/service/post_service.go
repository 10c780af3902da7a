package service

import (
	"context"

	"penaura/internal/cache"
	"penaura/internal/models"
	"penaura/internal/repository"
)

// PostService implements the content and rating rules.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	UserID   uint
	Title    string
	Category models.Category
	Content  string
}

// UpdatePostInput carries a full replacement of the mutable post fields.
type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Category models.Category
	Content  string
}

// ListPostsInput bounds a listing request.
type ListPostsInput struct {
	Limit  int
	Offset int
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

func validatePostFields(title string, category models.Category, content string) error {
	if title == "" || category == "" || content == "" {
		return models.NewValidationError("Title, category, and content are required")
	}
	if !category.Valid() {
		return models.NewValidationError("Category must be poetry, short, or novel")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}

// CreatePost validates and stores a new post for the authenticated user.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Category, in.Content); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   in.UserID,
		Title:    in.Title,
		Category: in.Category,
		Content:  in.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload to pick up the computed author and zero-valued aggregates.
	return s.postRepo.GetByID(ctx, post.ID)
}

// ListPosts returns every post, newest first, with the author name and
// live rating aggregate attached. A limit of 0 means unbounded. Only
// the default full listing is served cache-aside; paged requests
// bypass the cache so the fixed key never holds a truncated result.
// Every post or rating mutation invalidates the cached listing.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	var posts []*models.Post

	if in.Offset == 0 && in.Limit == 0 {
		err := cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, in.Limit, in.Offset)
			return fetchErr
		})
		return posts, err
	}

	return s.postRepo.List(ctx, in.Limit, in.Offset)
}

// GetUserPosts lists a user's posts. Only the owner may request their
// own list; anyone else gets an authorization failure, not a filter.
func (s *PostService) GetUserPosts(ctx context.Context, ownerID, requesterID uint, limit, offset int) ([]*models.Post, error) {
	if ownerID != requesterID {
		return nil, models.NewUnauthenticatedError("You can only list your own posts")
	}
	return s.postRepo.GetByUserID(ctx, ownerID, limit, offset)
}

// GetPost returns a single post with its aggregate, or a not-found error.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost replaces the mutable fields of the requester's own post.
// A missing post and a post owned by someone else produce the same
// not-found outcome.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Category, in.Content); err != nil {
		return nil, err
	}
	if err := s.postRepo.UpdateOwned(ctx, in.PostID, in.UserID, in.Title, in.Category, in.Content); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID)
}

// DeletePost removes the requester's own post, with the same collapsed
// not-found behavior as UpdatePost.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	return s.postRepo.DeleteOwned(ctx, postID, userID)
}

// RatePost upserts the requester's rating for a post: submitting twice
// overwrites the earlier value instead of adding a second vote.
func (s *PostService) RatePost(ctx context.Context, userID, postID uint, value int) error {
	if value < models.RatingMin || value > models.RatingMax {
		return models.NewValidationError("Rating must be between 1 and 5")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Rate(ctx, userID, postID, value)
}

// GetPostRating returns the live aggregate for a post; a post without
// ratings reports a zero average and zero votes.
func (s *PostService) GetPostRating(ctx context.Context, postID uint) (*models.RatingSummary, error) {
	return s.postRepo.GetRatingSummary(ctx, postID)
}
