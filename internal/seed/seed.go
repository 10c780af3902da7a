package seed

import (
	"fmt"
	"log"

	"penaura/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo users, posts, and ratings.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 30
	}

	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clearing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rng.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}

	// Roughly half the audience rates each post; authors skip their own.
	rated := 0
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID || f.rng.Intn(2) == 0 {
				continue
			}
			value := models.RatingMin + f.rng.Intn(models.RatingMax-models.RatingMin+1)
			if err := f.CreateRating(user, post, value); err != nil {
				return fmt.Errorf("creating rating: %w", err)
			}
			rated++
		}
	}

	log.Printf("Seeded %d users, %d posts, %d ratings. Login password for all accounts: %q",
		len(users), len(posts), rated, DefaultPassword)
	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents; keep this order in sync with the schema.
	for _, table := range []string{"ratings", "settings", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
