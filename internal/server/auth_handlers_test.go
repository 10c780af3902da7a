package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"penaura/internal/config"
	"penaura/internal/models"
	"penaura/internal/repository"
	"penaura/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Rating{},
		&models.Settings{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newAuthTestServer wires a Server against an in-memory database,
// bypassing NewServerWithDeps so tests don't re-register Prometheus
// collectors.
func newAuthTestServer(t *testing.T, db *gorm.DB) *Server {
	t.Helper()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	s := &Server{
		config:       &config.Config{JWTSecret: "test-secret-0123456789abcdef0123456789", Env: "test"},
		db:           db,
		userRepo:     userRepo,
		postRepo:     postRepo,
		settingsRepo: settingsRepo,
	}
	s.authService = service.NewAuthService(userRepo)
	s.postService = service.NewPostService(postRepo)
	s.settingsService = service.NewSettingsService(settingsRepo)
	return s
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newAuthTestServer(t, db)

	app := fiber.New()
	app.Post("/signup", s.Signup)

	t.Run("creates user with token", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", map[string]string{
			"name": "Ann", "email": "ann@example.com", "password": "hunter22",
		}, nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "Ann", out.User.Name)
		assert.NotZero(t, out.User.ID)
	})

	t.Run("settings row created with the user", func(t *testing.T) {
		var settings models.Settings
		require.NoError(t, db.Where("user_id = ?", 1).First(&settings).Error)
		assert.Equal(t, models.CategoryPoetry, settings.DefaultCategory)
		assert.Equal(t, models.ThemeLight, settings.Theme)
	})

	t.Run("duplicate email is a client error", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", map[string]string{
			"name": "Ann Again", "email": "ann@example.com", "password": "hunter23",
		}, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var out struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, models.CodeDuplicateEmail, out.Code)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", map[string]string{"email": "x@y.z"}, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("password never stored or returned in plaintext", func(t *testing.T) {
		var user models.User
		require.NoError(t, db.First(&user, 1).Error)
		assert.NotEqual(t, "hunter22", user.PasswordHash)

		raw, err := json.Marshal(user)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), user.PasswordHash)
	})
}

func TestLogin(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newAuthTestServer(t, db)

	app := fiber.New()
	app.Post("/signup", s.Signup)
	app.Post("/login", s.Login)

	resp := postJSON(t, app, "/signup", map[string]string{
		"name": "Bea", "email": "bea@example.com", "password": "correct horse",
	}, nil)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("valid credentials", func(t *testing.T) {
		resp := postJSON(t, app, "/login", map[string]string{
			"email": "bea@example.com", "password": "correct horse",
		}, nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "Bea", out.User.Name)
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		wrongPw := postJSON(t, app, "/login", map[string]string{
			"email": "bea@example.com", "password": "battery staple",
		}, nil)
		defer func() { _ = wrongPw.Body.Close() }()
		unknown := postJSON(t, app, "/login", map[string]string{
			"email": "nobody@example.com", "password": "correct horse",
		}, nil)
		defer func() { _ = unknown.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, wrongPw.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)

		var a, b map[string]any
		require.NoError(t, json.NewDecoder(wrongPw.Body).Decode(&a))
		require.NoError(t, json.NewDecoder(unknown.Body).Decode(&b))
		assert.Equal(t, a["error"], b["error"])
	})
}

func TestAuthRequired(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newAuthTestServer(t, db)

	app := fiber.New()
	app.Get("/settings", s.AuthRequired(), s.GetSettings)

	token, err := s.generateToken(1, "Ann")
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", expectedStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", expectedStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/settings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			// User 1 has no settings row, so the authenticated read
			// yields an empty object rather than an error.
			if tt.expectedStatus == http.StatusOK {
				var out map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				assert.Empty(t, out)
			}
		})
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newAuthTestServer(t, db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.redis = rdb
	t.Cleanup(func() { _ = rdb.Close() })

	app := fiber.New()
	app.Post("/signup", s.Signup)
	app.Post("/logout", s.AuthRequired(), s.Logout)
	app.Get("/settings", s.AuthRequired(), s.GetSettings)

	resp := postJSON(t, app, "/signup", map[string]string{
		"name": "Cal", "email": "cal@example.com", "password": "pw123456",
	}, nil)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	_ = resp.Body.Close()
	authHeader := map[string]string{"Authorization": "Bearer " + out.Token}

	// Token works before logout.
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	check, err := app.Test(req)
	require.NoError(t, err)
	_ = check.Body.Close()
	require.Equal(t, http.StatusOK, check.StatusCode)

	logout := postJSON(t, app, "/logout", map[string]string{}, authHeader)
	_ = logout.Body.Close()
	require.Equal(t, http.StatusOK, logout.StatusCode)

	// Same token is now revoked.
	req = httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	after, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = after.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, after.StatusCode)
}

func TestMe(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newAuthTestServer(t, db)

	app := fiber.New()
	app.Post("/signup", s.Signup)
	app.Get("/me", s.AuthRequired(), s.Me)

	resp := postJSON(t, app, "/signup", map[string]string{
		"name": "Dot", "email": "dot@example.com", "password": "pw123456",
	}, nil)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	_ = resp.Body.Close()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = meResp.Body.Close() }()
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me models.User
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "Dot", me.Name)
	assert.Equal(t, "dot@example.com", me.Email)
}
