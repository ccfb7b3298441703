package server

import (
	"fmt"
	"net/http"
	"testing"

	"quill/internal/models"
)

func TestAddCommentRedirectsToPost(t *testing.T) {
	app, srv, db := newTestApp(t, nil)
	owner, _ := registerUser(t, srv, "owner")
	_, commenterToken := registerUser(t, srv, "commenter")

	post := &models.Post{Text: "discuss", AuthorID: owner.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	path := fmt.Sprintf("/owner/%d/comment", post.ID)
	resp, err := app.Test(withAuth(postForm(path, "text=nice+post"), commenterToken))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	wantLocation := fmt.Sprintf("/owner/%d/", post.ID)
	if location := resp.Header.Get("Location"); location != wantLocation {
		t.Fatalf("expected redirect to post page, got %q", location)
	}

	var comment models.Comment
	if err := db.First(&comment).Error; err != nil {
		t.Fatalf("comment not persisted: %v", err)
	}
	if comment.PostID != post.ID || comment.Text != "nice post" {
		t.Fatalf("wrong comment persisted: %+v", comment)
	}
}

func TestAnonymousCommentRedirectsToLogin(t *testing.T) {
	app, srv, db := newTestApp(t, nil)
	owner, _ := registerUser(t, srv, "owner")

	post := &models.Post{Text: "discuss", AuthorID: owner.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	path := fmt.Sprintf("/owner/%d/comment", post.ID)
	resp, err := app.Test(postForm(path, "text=drive-by"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}

	var count int64
	if err := db.Model(&models.Comment{}).Count(&count).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 0 {
		t.Fatalf("anonymous comment was persisted")
	}
}

func TestCommentOnMissingPost(t *testing.T) {
	app, srv, _ := newTestApp(t, nil)
	_, token := registerUser(t, srv, "commenter")

	resp, err := app.Test(withAuth(postForm("/commenter/999/comment", "text=void"), token))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
