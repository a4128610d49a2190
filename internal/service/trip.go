// Package service contains the business logic for the DriveMapz API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
//
// Every operation takes the authenticated user's id as an explicit parameter.
// Mutating operations treat uuid.Nil as a missing session and fail with
// domain.ErrNoSession before touching the database.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{trips: r}
}

// Create validates and persists a new trip owned by userID.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if err := requireSession(userID); err != nil {
		return domain.Trip{}, err
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.UserID = userID

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID, scoped to userID.
func (s *TripService) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of the user's trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip.
func (s *TripService) Update(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if err := requireSession(userID); err != nil {
		return domain.Trip{}, err
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.UserID = userID

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID. The database cascades the delete to the trip's
// stops, fuel logs, toll logs, and track points.
func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - EndDate, if both dates are set, must not be before StartDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate != nil && trip.EndDate != nil && trip.EndDate.Before(*trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// requireSession is the session precondition shared by all mutating operations.
func requireSession(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrNoSession
	}
	return nil
}
