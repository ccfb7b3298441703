package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// Page is one paginated window of a feed.
type Page struct {
	Posts    []*models.Post `json:"posts"`
	Number   int            `json:"number"`
	PerPage  int            `json:"per_page"`
	NumPages int            `json:"num_pages"`
	Total    int64          `json:"total"`
	HasNext  bool           `json:"has_next"`
	HasPrev  bool           `json:"has_previous"`
}

// FeedService assembles paginated post feeds for every scope.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	perPage    int
}

// NewFeedService returns a new FeedService paginating at perPage posts.
func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository, perPage int) *FeedService {
	if perPage <= 0 {
		perPage = 10
	}
	return &FeedService{
		postRepo:   postRepo,
		followRepo: followRepo,
		perPage:    perPage,
	}
}

// PerPage returns the configured page size.
func (s *FeedService) PerPage() int {
	return s.perPage
}

// clamp resolves a requested page number against the total. A feed always has
// at least one page, so out-of-range requests land on the nearest real page
// instead of an empty one.
func (s *FeedService) clamp(page int, total int64) (number, numPages int) {
	numPages = int((total + int64(s.perPage) - 1) / int64(s.perPage))
	if numPages < 1 {
		numPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}
	return page, numPages
}

func (s *FeedService) buildPage(posts []*models.Post, number, numPages int, total int64) *Page {
	if posts == nil {
		posts = []*models.Post{}
	}
	return &Page{
		Posts:    posts,
		Number:   number,
		PerPage:  s.perPage,
		NumPages: numPages,
		Total:    total,
		HasNext:  number < numPages,
		HasPrev:  number > 1,
	}
}

// Global returns one page of the site-wide feed.
func (s *FeedService) Global(ctx context.Context, page int) (*Page, error) {
	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	number, numPages := s.clamp(page, total)
	posts, err := s.postRepo.ListPage(ctx, s.perPage, (number-1)*s.perPage)
	if err != nil {
		return nil, err
	}
	return s.buildPage(posts, number, numPages, total), nil
}

// Group returns one page of a group's feed.
func (s *FeedService) Group(ctx context.Context, groupID uint, page int) (*Page, error) {
	total, err := s.postRepo.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	number, numPages := s.clamp(page, total)
	posts, err := s.postRepo.ListByGroup(ctx, groupID, s.perPage, (number-1)*s.perPage)
	if err != nil {
		return nil, err
	}
	return s.buildPage(posts, number, numPages, total), nil
}

// Author returns one page of an author's feed.
func (s *FeedService) Author(ctx context.Context, authorID uint, page int) (*Page, error) {
	total, err := s.postRepo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	number, numPages := s.clamp(page, total)
	posts, err := s.postRepo.ListByAuthor(ctx, authorID, s.perPage, (number-1)*s.perPage)
	if err != nil {
		return nil, err
	}
	return s.buildPage(posts, number, numPages, total), nil
}

// Following returns one page of the posts authored by everyone userID
// follows. Following nobody yields the one empty page.
func (s *FeedService) Following(ctx context.Context, userID uint, page int) (*Page, error) {
	authorIDs, err := s.followRepo.AuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	number, numPages := s.clamp(page, total)
	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, s.perPage, (number-1)*s.perPage)
	if err != nil {
		return nil, err
	}
	return s.buildPage(posts, number, numPages, total), nil
}
