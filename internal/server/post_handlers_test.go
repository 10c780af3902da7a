package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"penaura/internal/models"
	"penaura/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateOwned(ctx context.Context, postID, userID uint, title string, category models.Category, content string) error {
	args := m.Called(ctx, postID, userID, title, category, content)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteOwned(ctx context.Context, postID, userID uint) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostRepository) Rate(ctx context.Context, userID, postID uint, value int) error {
	args := m.Called(ctx, userID, postID, value)
	return args.Error(0)
}

func (m *MockPostRepository) GetRatingSummary(ctx context.Context, postID uint) (*models.RatingSummary, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingSummary), args.Error(1)
}

func newTestServer(repo *MockPostRepository) *Server {
	s := &Server{postRepo: repo}
	s.postService = service.NewPostService(repo)
	return s
}

func authedApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func TestCreatePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	s := newTestServer(mockRepo)

	app := authedApp(1)
	app.Post("/posts", s.CreatePost)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"title":    "Evening Verse",
				"category": "poetry",
				"content":  "the lamp burns low",
			},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				mockRepo.On("GetByID", mock.Anything, mock.Anything).Return(&models.Post{ID: 1, Title: "Evening Verse"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"title": "",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Category Outside Enum",
			body: map[string]string{
				"title":    "Essay",
				"category": "essay",
				"content":  "text",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRatePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	s := newTestServer(mockRepo)

	app := authedApp(1)
	app.Post("/posts/:id/rate", s.RatePost)

	tests := []struct {
		name           string
		path           string
		rating         int
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:   "Success",
			path:   "/posts/5/rate",
			rating: 4,
			mockSetup: func() {
				mockRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5}, nil)
				mockRepo.On("Rate", mock.Anything, uint(1), uint(5), 4).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Out Of Range",
			path:           "/posts/5/rate",
			rating:         6,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Missing Post",
			path:   "/posts/99/rate",
			rating: 3,
			mockSetup: func() {
				mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("Post"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(map[string]int{"rating": tt.rating})
			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetPostRating(t *testing.T) {
	mockRepo := new(MockPostRepository)
	s := newTestServer(mockRepo)
	mockRepo.On("GetRatingSummary", mock.Anything, uint(7)).Return(
		&models.RatingSummary{AverageRating: 4.33, VoteCount: 3}, nil)

	app := fiber.New()
	app.Get("/posts/:id/rating", s.GetPostRating)

	req := httptest.NewRequest(http.MethodGet, "/posts/7/rating", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summary models.RatingSummary
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 4.33, summary.AverageRating)
	assert.Equal(t, 3, summary.VoteCount)
}

func TestGetUserPosts_SelfOnly(t *testing.T) {
	mockRepo := new(MockPostRepository)
	s := newTestServer(mockRepo)
	mockRepo.On("GetByUserID", mock.Anything, uint(1), 0, 0).Return([]*models.Post{{ID: 1, UserID: 1}}, nil)

	app := authedApp(1)
	app.Get("/posts/user/:id", s.GetUserPosts)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/posts/user/1", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Asking for another user's list is rejected, not filtered.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/posts/user/2", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeletePost_NotOwnerCollapsesToNotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	s := newTestServer(mockRepo)
	mockRepo.On("DeleteOwned", mock.Anything, uint(9), uint(1)).Return(models.NewNotFoundError("Post"))

	app := authedApp(1)
	app.Delete("/posts/:id", s.DeletePost)

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/9", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
