package seed

import (
	"fmt"
	"math/rand"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoOptions controls how much demo content Demo generates.
type DemoOptions struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	FollowDensity   float64 // probability of a follow edge between any user pair
	Password        string  // shared login password for every demo account
}

// DefaultDemoOptions are sized to overflow several feed pages.
func DefaultDemoOptions() DemoOptions {
	return DemoOptions{
		Users:           8,
		PostsPerUser:    6,
		CommentsPerPost: 2,
		FollowDensity:   0.3,
		Password:        "DemoPassword123",
	}
}

// Demo fills the database with fake users, posts, comments, and follow
// edges. It assumes Groups has already run; posts are spread across the
// built-in groups with some left ungrouped.
func Demo(db *gorm.DB, opts DemoOptions) error {
	var groups []models.Group
	if err := db.Find(&groups).Error; err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("demo%d_%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}

	for _, user := range users {
		for j := 0; j < opts.PostsPerUser; j++ {
			post := &models.Post{
				Text:     gofakeit.Paragraph(1, 3, 12, " "),
				AuthorID: user.ID,
			}
			if len(groups) > 0 && rand.Float64() < 0.7 {
				gid := groups[rand.Intn(len(groups))].ID
				post.GroupID = &gid
			}
			if err := db.Create(post).Error; err != nil {
				return err
			}

			for k := 0; k < opts.CommentsPerPost; k++ {
				comment := &models.Comment{
					PostID:   post.ID,
					AuthorID: users[rand.Intn(len(users))].ID,
					Text:     gofakeit.Sentence(10),
				}
				if err := db.Create(comment).Error; err != nil {
					return err
				}
			}
		}
	}

	for _, follower := range users {
		for _, author := range users {
			if follower.ID == author.ID || rand.Float64() >= opts.FollowDensity {
				continue
			}
			edge := &models.Follow{UserID: follower.ID, AuthorID: author.ID}
			if err := db.Create(edge).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
