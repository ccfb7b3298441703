package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"quill/internal/database"
	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func newFeedFixture(t *testing.T) (*gorm.DB, *FeedService) {
	t.Helper()
	db := setupFeedTestDB(t)
	feed := NewFeedService(
		repository.NewPostRepository(db),
		repository.NewFollowRepository(db),
		10,
	)
	return db, feed
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func seedPosts(t *testing.T, db *gorm.DB, author *models.User, n int, groupID *uint) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		post := &models.Post{
			Text:     fmt.Sprintf("%s post %d", author.Username, i),
			AuthorID: author.ID,
			GroupID:  groupID,
			PubDate:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(post).Error; err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}
}

func TestGlobalFeedPagination(t *testing.T) {
	t.Parallel()

	db, feed := newFeedFixture(t)
	author := seedUser(t, db, "writer")
	seedPosts(t, db, author, 13, nil)
	ctx := context.Background()

	first, err := feed.Global(ctx, 1)
	if err != nil {
		t.Fatalf("Global page 1: %v", err)
	}
	if len(first.Posts) != 10 {
		t.Fatalf("expected full first page, got %d posts", len(first.Posts))
	}
	if first.NumPages != 2 || first.Total != 13 {
		t.Fatalf("expected 2 pages of 13 posts, got %d pages of %d", first.NumPages, first.Total)
	}
	if !first.HasNext || first.HasPrev {
		t.Fatalf("expected HasNext && !HasPrev on page 1, got next=%v prev=%v", first.HasNext, first.HasPrev)
	}
	// Newest first.
	if first.Posts[0].Text != "writer post 12" {
		t.Fatalf("expected newest post first, got %q", first.Posts[0].Text)
	}

	second, err := feed.Global(ctx, 2)
	if err != nil {
		t.Fatalf("Global page 2: %v", err)
	}
	if len(second.Posts) != 3 {
		t.Fatalf("expected 3 posts on last page, got %d", len(second.Posts))
	}
	if second.HasNext || !second.HasPrev {
		t.Fatalf("expected !HasNext && HasPrev on last page, got next=%v prev=%v", second.HasNext, second.HasPrev)
	}
}

func TestGlobalFeedClampsOutOfRangePages(t *testing.T) {
	t.Parallel()

	db, feed := newFeedFixture(t)
	author := seedUser(t, db, "writer")
	seedPosts(t, db, author, 13, nil)
	ctx := context.Background()

	// A page past the end resolves to the last page, never an empty one.
	page, err := feed.Global(ctx, 99)
	if err != nil {
		t.Fatalf("Global page 99: %v", err)
	}
	if page.Number != 2 {
		t.Fatalf("expected clamp to page 2, got %d", page.Number)
	}
	if len(page.Posts) != 3 {
		t.Fatalf("expected last page content after clamping, got %d posts", len(page.Posts))
	}

	// Garbage below the range resolves to page one.
	page, err = feed.Global(ctx, -5)
	if err != nil {
		t.Fatalf("Global page -5: %v", err)
	}
	if page.Number != 1 || len(page.Posts) != 10 {
		t.Fatalf("expected clamp to page 1, got page %d with %d posts", page.Number, len(page.Posts))
	}
}

func TestEmptyFeedIsOnePage(t *testing.T) {
	t.Parallel()

	_, feed := newFeedFixture(t)

	page, err := feed.Global(context.Background(), 7)
	if err != nil {
		t.Fatalf("Global on empty feed: %v", err)
	}
	if page.Number != 1 || page.NumPages != 1 {
		t.Fatalf("expected the single empty page, got page %d of %d", page.Number, page.NumPages)
	}
	if len(page.Posts) != 0 || page.HasNext || page.HasPrev {
		t.Fatalf("expected empty page without neighbors, got %+v", page)
	}
	if page.Posts == nil {
		t.Fatal("expected empty slice, not nil, so the page serializes as []")
	}
}

func TestGroupFeedScoping(t *testing.T) {
	t.Parallel()

	db, feed := newFeedFixture(t)
	author := seedUser(t, db, "writer")

	group := &models.Group{Title: "Travel", Slug: "travel"}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}

	seedPosts(t, db, author, 4, &group.ID)
	seedPosts(t, db, author, 3, nil)

	page, err := feed.Group(context.Background(), group.ID, 1)
	if err != nil {
		t.Fatalf("Group feed: %v", err)
	}
	if page.Total != 4 || len(page.Posts) != 4 {
		t.Fatalf("expected 4 group posts, got total=%d len=%d", page.Total, len(page.Posts))
	}
	for _, p := range page.Posts {
		if p.GroupID == nil || *p.GroupID != group.ID {
			t.Fatalf("post %d leaked into group feed", p.ID)
		}
	}
}

func TestFollowingFeedIsolation(t *testing.T) {
	t.Parallel()

	db, feed := newFeedFixture(t)
	reader := seedUser(t, db, "reader")
	followed := seedUser(t, db, "followed")
	stranger := seedUser(t, db, "stranger")

	seedPosts(t, db, followed, 2, nil)
	seedPosts(t, db, stranger, 5, nil)

	if err := db.Create(&models.Follow{UserID: reader.ID, AuthorID: followed.ID}).Error; err != nil {
		t.Fatalf("create follow: %v", err)
	}

	page, err := feed.Following(context.Background(), reader.ID, 1)
	if err != nil {
		t.Fatalf("Following feed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected only followed author's posts, got %d", page.Total)
	}
	for _, p := range page.Posts {
		if p.AuthorID != followed.ID {
			t.Fatalf("post by author %d leaked into following feed", p.AuthorID)
		}
	}

	// Following nobody yields the one empty page, not an error.
	empty, err := feed.Following(context.Background(), stranger.ID, 1)
	if err != nil {
		t.Fatalf("Following feed with no edges: %v", err)
	}
	if empty.Total != 0 || len(empty.Posts) != 0 {
		t.Fatalf("expected empty following feed, got %d posts", len(empty.Posts))
	}
}

func TestAuthorFeedScoping(t *testing.T) {
	t.Parallel()

	db, feed := newFeedFixture(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedPosts(t, db, alice, 3, nil)
	seedPosts(t, db, bob, 2, nil)

	page, err := feed.Author(context.Background(), alice.ID, 1)
	if err != nil {
		t.Fatalf("Author feed: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected 3 posts for alice, got %d", page.Total)
	}
	for _, p := range page.Posts {
		if p.AuthorID != alice.ID {
			t.Fatalf("post by author %d leaked into alice's feed", p.AuthorID)
		}
	}
}
