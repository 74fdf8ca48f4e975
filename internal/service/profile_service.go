package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/social-service/internal/domain"
	"github.com/spec-kit/social-service/internal/repository"
	apperrors "github.com/spec-kit/social-service/pkg/util"
)

// ProfileUpdate carries a partial profile edit; nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Interests *string
	Location  *string
}

// ProfileService serves the caller's own profile.
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService builds the service.
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the profile owned by the user.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("profile", nil)
		}
		return nil, err
	}
	return profile, nil
}

// Update applies a partial edit to the user's profile and returns the result.
func (s *ProfileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		profile.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		profile.LastName = *update.LastName
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Interests != nil {
		profile.Interests = *update.Interests
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
