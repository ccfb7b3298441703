package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"
)

func TestCreateGroupRedirectsToGroupFeed(t *testing.T) {
	app, srv, db := newTestApp(t, nil)
	_, token := registerUser(t, srv, "founder")

	resp, err := app.Test(withAuth(postForm("/new_group", "title=Travel+Notes&slug=Travel&description=trips"), token))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	// Slugs are lowercased on the way in.
	if location := resp.Header.Get("Location"); location != "/group/travel/" {
		t.Fatalf("expected redirect to group feed, got %q", location)
	}

	var group models.Group
	if err := db.Where("slug = ?", "travel").First(&group).Error; err != nil {
		t.Fatalf("group not persisted: %v", err)
	}
}

func TestCreateGroupRejectsReservedAndTakenSlugs(t *testing.T) {
	app, srv, db := newTestApp(t, nil)
	_, token := registerUser(t, srv, "founder")

	if err := db.Create(&models.Group{Title: "Taken", Slug: "taken"}).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}

	for _, body := range []string{
		"title=X&slug=auth",  // reserved route segment
		"title=X&slug=taken", // already exists
		"title=X&slug=bad%20slug",
		"title=&slug=fine",
	} {
		resp, err := app.Test(withAuth(postForm("/new_group", body), token))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, resp.StatusCode)
		}
	}
}

func TestGroupFeedExcludesOtherGroups(t *testing.T) {
	app, srv, db := newTestApp(t, nil)
	author, _ := registerUser(t, srv, "writer")

	travel := &models.Group{Title: "Travel", Slug: "travel"}
	food := &models.Group{Title: "Food", Slug: "food"}
	for _, g := range []*models.Group{travel, food} {
		if err := db.Create(g).Error; err != nil {
			t.Fatalf("create group: %v", err)
		}
	}
	for _, p := range []*models.Post{
		{Text: "in travel", AuthorID: author.ID, GroupID: &travel.ID},
		{Text: "in food", AuthorID: author.ID, GroupID: &food.ID},
		{Text: "ungrouped", AuthorID: author.ID},
	} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/group/travel", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var payload struct {
		Group models.Group `json:"group"`
		Page  struct {
			Posts []models.Post `json:"posts"`
			Total int64         `json:"total"`
		} `json:"page"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Group.Slug != "travel" {
		t.Fatalf("wrong group in payload: %+v", payload.Group)
	}
	if payload.Page.Total != 1 || payload.Page.Posts[0].Text != "in travel" {
		t.Fatalf("group feed leaked posts: %+v", payload.Page)
	}
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/group/nowhere", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
