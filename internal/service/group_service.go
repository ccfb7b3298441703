package service

import (
	"context"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/repository"
)

// GroupService provides group business logic.
type GroupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup persists a new group from a validated form delta.
func (s *GroupService) CreateGroup(ctx context.Context, delta *forms.GroupDelta) (*models.Group, error) {
	group := &models.Group{
		Title:       delta.Title,
		Slug:        delta.Slug,
		Description: delta.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroupBySlug resolves a group by its slug.
func (s *GroupService) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

// ListGroups returns all groups ordered by title.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

// DeleteGroup removes a group. Its posts survive, detached from the group.
func (s *GroupService) DeleteGroup(ctx context.Context, id uint) error {
	return s.groupRepo.Delete(ctx, id)
}
