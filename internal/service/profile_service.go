package service

import (
	"context"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/repository"
)

// ProfileService provides profile business logic.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// CreateProfile persists a new profile for userID from a validated form
// delta. A second create for the same user fails on the uniqueness
// constraint.
func (s *ProfileService) CreateProfile(ctx context.Context, userID uint, delta *forms.ProfileDelta, imageURL string) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:   userID,
		Bio:      delta.Bio,
		ImageURL: imageURL,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the profile for userID, or a not-found error when the
// user never created one.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies a validated form delta to an existing profile. When
// the delta carries no new image the existing one is kept.
func (s *ProfileService) UpdateProfile(ctx context.Context, profile *models.Profile, delta *forms.ProfileDelta, imageURL string) (*models.Profile, error) {
	profile.Bio = delta.Bio
	if imageURL != "" {
		profile.ImageURL = imageURL
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, profile.UserID)
}
