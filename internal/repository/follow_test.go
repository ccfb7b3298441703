package repository

import (
	"context"
	"testing"

	"quill/internal/models"
)

func TestFollowCreateIsIdempotent(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	follows := NewFollowRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, users, "reader")
	author := createTestUser(t, users, "author")

	if err := follows.Create(ctx, reader.ID, author.ID); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	// Second insert of the same pair must change nothing.
	if err := follows.Create(ctx, reader.ID, author.ID); err != nil {
		t.Fatalf("duplicate follow: %v", err)
	}

	var count int64
	if err := db.Model(&models.Follow{}).Count(&count).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one follow edge, got %d", count)
	}
}

func TestFollowDeleteReportsExistence(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	follows := NewFollowRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, users, "reader")
	author := createTestUser(t, users, "author")

	removed, err := follows.Delete(ctx, reader.ID, author.ID)
	if err != nil {
		t.Fatalf("delete missing edge: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for missing edge")
	}

	if err := follows.Create(ctx, reader.ID, author.ID); err != nil {
		t.Fatalf("create follow: %v", err)
	}
	removed, err = follows.Delete(ctx, reader.ID, author.ID)
	if err != nil {
		t.Fatalf("delete edge: %v", err)
	}
	if !removed {
		t.Fatal("expected removed=true for existing edge")
	}
}

func TestFollowDirectionality(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	follows := NewFollowRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, users, "alice")
	bob := createTestUser(t, users, "bob")

	if err := follows.Create(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("create follow: %v", err)
	}

	forward, err := follows.Exists(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("exists forward: %v", err)
	}
	reverse, err := follows.Exists(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("exists reverse: %v", err)
	}
	if !forward || reverse {
		t.Fatalf("expected forward-only edge, got forward=%v reverse=%v", forward, reverse)
	}

	ids, err := follows.AuthorIDs(ctx, alice.ID)
	if err != nil {
		t.Fatalf("AuthorIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != bob.ID {
		t.Fatalf("expected alice to follow only bob, got %v", ids)
	}

	followers, err := follows.CountFollowers(ctx, bob.ID)
	if err != nil {
		t.Fatalf("CountFollowers: %v", err)
	}
	if followers != 1 {
		t.Fatalf("expected bob to have 1 follower, got %d", followers)
	}
}
