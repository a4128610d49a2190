package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
)

// ProfileService implements business logic for the per-user camper profile.
type ProfileService struct {
	profiles repo.CamperProfileRepo
}

// NewProfileService constructs a ProfileService backed by the provided repo.
func NewProfileService(profiles repo.CamperProfileRepo) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the user's profile, or domain.ErrNotFound when none was saved yet.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (domain.CamperProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return domain.CamperProfile{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	return profile, nil
}

// Save creates or replaces the user's profile.
func (s *ProfileService) Save(ctx context.Context, userID uuid.UUID, profile domain.CamperProfile) (domain.CamperProfile, error) {
	if err := requireSession(userID); err != nil {
		return domain.CamperProfile{}, err
	}
	if err := validateProfile(profile); err != nil {
		return domain.CamperProfile{}, err
	}
	profile.UserID = userID

	result, err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		return domain.CamperProfile{}, fmt.Errorf("service.ProfileService.Save: %w", err)
	}
	return result, nil
}

// validateProfile rejects nonsensical vehicle numbers.
func validateProfile(p domain.CamperProfile) error {
	if p.ConsumptionL100 != nil && *p.ConsumptionL100 <= 0 {
		return fmt.Errorf("%w: consumption_l_per_100km must be positive", domain.ErrValidation)
	}
	if p.TankCapacityL != nil && *p.TankCapacityL <= 0 {
		return fmt.Errorf("%w: tank_capacity_l must be positive", domain.ErrValidation)
	}
	return nil
}
