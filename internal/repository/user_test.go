package repository

import (
	"context"
	"testing"

	"quill/internal/models"
)

func TestUserDeleteCascades(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	follows := NewFollowRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	doomed := createTestUser(t, users, "doomed")
	bystander := createTestUser(t, users, "bystander")

	doomedPost := &models.Post{Text: "mine", AuthorID: doomed.ID}
	bystanderPost := &models.Post{Text: "theirs", AuthorID: bystander.ID}
	for _, p := range []*models.Post{doomedPost, bystanderPost} {
		if err := posts.Create(ctx, p); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	// Bystander comments on the doomed user's post; doomed comments on the
	// bystander's post. Both comments must go.
	for _, c := range []*models.Comment{
		{PostID: doomedPost.ID, AuthorID: bystander.ID, Text: "on doomed post"},
		{PostID: bystanderPost.ID, AuthorID: doomed.ID, Text: "by doomed user"},
	} {
		if err := comments.Create(ctx, c); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	if err := follows.Create(ctx, doomed.ID, bystander.ID); err != nil {
		t.Fatalf("create follow: %v", err)
	}
	if err := follows.Create(ctx, bystander.ID, doomed.ID); err != nil {
		t.Fatalf("create follow: %v", err)
	}
	if err := profiles.Create(ctx, &models.Profile{UserID: doomed.ID, Bio: "bye"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	if err := users.Delete(ctx, doomed.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := users.GetByID(ctx, doomed.ID); !models.IsNotFound(err) {
		t.Fatalf("expected user gone, got %v", err)
	}
	if _, err := posts.GetByID(ctx, doomedPost.ID); !models.IsNotFound(err) {
		t.Fatalf("expected post gone, got %v", err)
	}

	var commentCount int64
	if err := db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if commentCount != 0 {
		t.Fatalf("expected all comments touching the user gone, %d remain", commentCount)
	}

	var followCount int64
	if err := db.Model(&models.Follow{}).Count(&followCount).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}
	if followCount != 0 {
		t.Fatalf("expected follow edges in both directions gone, %d remain", followCount)
	}

	if _, err := profiles.GetByUserID(ctx, doomed.ID); !models.IsNotFound(err) {
		t.Fatalf("expected profile gone, got %v", err)
	}

	// The bystander's own post survives untouched.
	if _, err := posts.GetByID(ctx, bystanderPost.ID); err != nil {
		t.Fatalf("expected bystander post to survive: %v", err)
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, users, "taken")

	err := users.Create(ctx, &models.User{
		Username: "taken",
		Email:    "other@example.com",
		Password: "hashed",
	})
	if err == nil {
		t.Fatal("expected duplicate username to fail")
	}
}

func TestUserGetByUsernameMiss(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	users := NewUserRepository(db)

	user, err := users.GetByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("expected nil error on miss, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user on miss, got %+v", user)
	}
}
