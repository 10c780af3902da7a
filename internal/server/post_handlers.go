package server

import (
	"penaura/internal/models"
	"penaura/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	userID := currentUserID(c)

	var req struct {
		Title    string `json:"title"`
		Category string `json:"category"`
		Content  string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Category: models.Category(req.Category),
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	page := parsePagination(c)

	posts, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.JSON(posts)
}

// GetPost handles GET /posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// GetUserPosts handles GET /posts/user/:id
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	ownerID, err := s.parseID(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c)

	posts, err := s.postService.GetUserPosts(ctx, ownerID, currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.JSON(posts)
}

// UpdatePost handles PUT /posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title    string `json:"title"`
		Category string `json:"category"`
		Content  string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:   currentUserID(c),
		PostID:   id,
		Title:    req.Title,
		Category: models.Category(req.Category),
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, id, currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// RatePost handles POST /posts/:id/rate
func (s *Server) RatePost(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.RatePost(ctx, currentUserID(c), id, req.Rating); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Rating submitted"})
}

// GetPostRating handles GET /posts/:id/rating
func (s *Server) GetPostRating(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	summary, err := s.postService.GetPostRating(ctx, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(summary)
}
