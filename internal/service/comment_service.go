package service

import (
	"context"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
)

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a new comment by authorID to the post. The post must
// exist; a miss surfaces as the repository's not-found error.
func (s *CommentService) AddComment(ctx context.Context, authorID, postID uint, delta *forms.CommentDelta) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     delta.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentsCreated.Inc()
	return comment, nil
}

// ListComments returns a post's comments in creation order.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
