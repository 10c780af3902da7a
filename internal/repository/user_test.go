package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"penaura/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		email         string
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:  "Success",
			email: "ann@example.com",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "email"}).
					AddRow(1, "Ann", "ann@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs("ann@example.com", 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Name: "Ann", Email: "ann@example.com"},
		},
		{
			name:  "Not Found Returns Nil Without Error",
			email: "nobody@example.com",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs("nobody@example.com", 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
		},
		{
			name:  "Database Error",
			email: "ann@example.com",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs("ann@example.com", 1).
					WillReturnError(fmt.Errorf("connection refused"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByEmail(ctx, tt.email)

			if tt.expectedError {
				assert.Error(t, err)
			} else if tt.expectedUser == nil {
				assert.NoError(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, user) {
					assert.Equal(t, tt.expectedUser.Email, user.Email)
					assert.Equal(t, tt.expectedUser.Name, user.Name)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{
			name:     "postgres duplicate key",
			err:      errors.New(`duplicate key value violates unique constraint "idx_users_email"`),
			expected: true,
		},
		{
			name:     "postgres sqlstate",
			err:      errors.New("ERROR: some failure (SQLSTATE 23505)"),
			expected: true,
		},
		{
			name:     "sqlite unique",
			err:      errors.New("UNIQUE constraint failed: users.email"),
			expected: true,
		},
		{name: "unrelated", err: errors.New("connection reset"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUniqueConstraintError(tt.err))
		})
	}
}
