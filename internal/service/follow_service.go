package service

import (
	"context"

	"quill/internal/observability"
	"quill/internal/policy"
	"quill/internal/repository"
)

// FollowService provides follow-edge business logic. Mutations return the
// policy decision so handlers can translate denials into redirects; a denied
// decision with a nil error is not a failure, just a refused request.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge userID -> authorID. The target must exist. A
// duplicate request, including one racing past the existence check, lands on
// the storage conflict clause and changes nothing.
func (s *FollowService) Follow(ctx context.Context, userID, authorID uint) (policy.Decision, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return policy.Decision{}, err
	}
	following, err := s.followRepo.Exists(ctx, userID, authorID)
	if err != nil {
		return policy.Decision{}, err
	}
	decision := policy.CanFollow(userID, authorID, following)
	if !decision.Allowed {
		return decision, nil
	}
	if err := s.followRepo.Create(ctx, userID, authorID); err != nil {
		return policy.Decision{}, err
	}
	observability.FollowEdgesChanged.WithLabelValues("follow").Inc()
	return decision, nil
}

// Unfollow removes the edge userID -> authorID if it exists.
func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uint) (policy.Decision, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return policy.Decision{}, err
	}
	following, err := s.followRepo.Exists(ctx, userID, authorID)
	if err != nil {
		return policy.Decision{}, err
	}
	decision := policy.CanUnfollow(userID, following)
	if !decision.Allowed {
		return decision, nil
	}
	removed, err := s.followRepo.Delete(ctx, userID, authorID)
	if err != nil {
		return policy.Decision{}, err
	}
	if removed {
		observability.FollowEdgesChanged.WithLabelValues("unfollow").Inc()
	}
	return decision, nil
}

// IsFollowing reports whether the edge userID -> authorID exists. An
// anonymous caller follows nobody.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}

// FollowerCounts returns how many users follow the author and how many the
// author follows.
func (s *FollowService) FollowerCounts(ctx context.Context, authorID uint) (followers, following int64, err error) {
	followers, err = s.followRepo.CountFollowers(ctx, authorID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.followRepo.CountFollowing(ctx, authorID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
