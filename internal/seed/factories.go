// Package seed provides helpers to create demo data for development and
// testing. Not used on production paths.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"penaura/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the login password for every seeded account.
const DefaultPassword = "password123"

var categories = []models.Category{
	models.CategoryPoetry,
	models.CategoryShort,
	models.CategoryNovel,
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with hashed password and a default
// settings row, mirroring what signup does.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	name := gofakeit.Name()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s%d@example.com", slugify(name), f.rng.Intn(100000)),
		PasswordHash: string(hash),
	}
	for _, o := range overrides {
		o(user)
	}

	err = f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		settings := &models.Settings{
			UserID:          user.ID,
			DefaultCategory: categories[f.rng.Intn(len(categories))],
			Theme:           randomTheme(f.rng),
		}
		return tx.Create(settings).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post for the given author with generated
// content sized to its category.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	category := categories[f.rng.Intn(len(categories))]
	post := &models.Post{
		UserID:   author.ID,
		Title:    strings.TrimSuffix(gofakeit.Sentence(4), "."),
		Category: category,
		Content:  contentFor(category),
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, o := range overrides {
		o(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateRating persists one rating; repeated calls with the same pair
// overwrite the value, keeping the unique (user, post) invariant.
func (f *Factory) CreateRating(rater *models.User, post *models.Post, value int) error {
	return f.db.Exec(
		`INSERT INTO ratings (user_id, post_id, rating, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO UPDATE SET rating = excluded.rating`,
		rater.ID, post.ID, value,
	).Error
}

func contentFor(category models.Category) string {
	switch category {
	case models.CategoryPoetry:
		return gofakeit.Paragraph(1, 4, 6, "\n")
	case models.CategoryShort:
		return gofakeit.Paragraph(3, 5, 10, "\n\n")
	default:
		return gofakeit.Paragraph(6, 8, 12, "\n\n")
	}
}

func randomTheme(rng *rand.Rand) models.Theme {
	if rng.Intn(2) == 0 {
		return models.ThemeLight
	}
	return models.ThemeDark
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "."))
}
