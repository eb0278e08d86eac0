// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"blogify/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumBlogs    int
	NumComments int
	ShouldClean bool
}

// Seed populates the database with test data. Every seeded account signs in
// with "Password123".
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users, %d blogs, %d comments...",
		opts.NumUsers, opts.NumBlogs, opts.NumComments)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	blogs, err := createBlogs(db, users, opts.NumBlogs)
	if err != nil {
		return fmt.Errorf("failed to create blogs: %w", err)
	}
	log.Printf("created %d blogs", len(blogs))

	if err := createComments(db, users, blogs, opts.NumComments); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", opts.NumComments)

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents.
	for _, model := range []any{&models.Comment{}, &models.Blog{}, &models.User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count+1)

	// A known admin for manual testing.
	admin := models.User{
		FullName:        "Site Admin",
		Email:           "admin@blogify.local",
		Password:        string(hashedPassword),
		Role:            models.RoleAdmin,
		ProfileImageURL: "/default.svg",
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		user := models.User{
			FullName:        name,
			Email:           fmt.Sprintf("%s%d@%s", strings.ToLower(gofakeit.Username()), i, gofakeit.DomainName()),
			Password:        string(hashedPassword),
			Role:            models.RoleUser,
			ProfileImageURL: "/default.svg",
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createBlogs(db *gorm.DB, users []models.User, count int) ([]models.Blog, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author blogs")
	}

	admin := users[0]
	blogs := make([]models.Blog, 0, count)

	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		blog := models.Blog{
			Title:         gofakeit.Sentence(6),
			Body:          gofakeit.Paragraph(3, 5, 12, "\n\n"),
			CoverImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
			CreatedByID:   author.ID,
			Status:        models.StatusPending,
		}

		// Roughly two thirds approved, a sixth rejected, the rest pending.
		switch rand.Intn(6) {
		case 0:
			blog.Status = models.StatusRejected
			blog.RejectionReason = gofakeit.Sentence(8)
		case 1:
			// stays pending
		default:
			blog.Status = models.StatusApproved
			blog.IsPublished = true
			blog.ApprovedByID = &admin.ID
			blog.ViewCount = rand.Intn(500)
		}

		if err := db.Create(&blog).Error; err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	return blogs, nil
}

func createComments(db *gorm.DB, users []models.User, blogs []models.Blog, count int) error {
	if len(blogs) == 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		comment := models.Comment{
			Content:     gofakeit.Sentence(12),
			BlogID:      blogs[rand.Intn(len(blogs))].ID,
			CreatedByID: users[rand.Intn(len(users))].ID,
		}
		if err := db.Create(&comment).Error; err != nil {
			return err
		}
	}
	return nil
}
