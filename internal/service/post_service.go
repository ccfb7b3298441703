package service

import (
	"context"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

// PostService provides post business logic.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost persists a new post authored by authorID from a validated form
// delta. imageURL is the stored location of the uploaded image, empty when
// none was submitted.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, delta *forms.PostDelta, imageURL string) (*models.Post, error) {
	post := &models.Post{
		Text:     delta.Text,
		AuthorID: authorID,
		GroupID:  delta.GroupID,
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns the post with its author and group loaded.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost applies a validated form delta to an existing post. Author and
// publication date never change. When the delta carries no new image the
// existing one is kept.
func (s *PostService) UpdatePost(ctx context.Context, post *models.Post, delta *forms.PostDelta, imageURL string) (*models.Post, error) {
	post.Text = delta.Text
	post.GroupID = delta.GroupID
	if imageURL != "" {
		post.ImageURL = imageURL
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}
