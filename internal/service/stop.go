package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
)

// StopService implements the ordered stop list operations.
//
// The three mutations are opaque remote transactions: the stored procedures
// do all index renumbering, and this service re-reads afterwards instead of
// patching any local state. It holds the trip repo as well because inserting
// a stop first verifies the parent trip is visible to the caller.
type StopService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewStopService constructs a StopService backed by the provided repos.
func NewStopService(trips repo.TripRepo, stops repo.StopRepo) *StopService {
	return &StopService{trips: trips, stops: stops}
}

// InsertAt inserts a new stop so that it occupies targetIndex in the trip's
// sequence; every existing stop at or above that position shifts up by one.
// A nil targetIndex appends at max(existing)+1 — the append position is
// computed by the database, never here.
//
// The draft's variant type decides which fields can be present; see
// domain.StopDraft. Returns the stop as re-read after the insert, so the
// caller observes the index the database actually assigned.
func (s *StopService) InsertAt(ctx context.Context, userID, tripID uuid.UUID, targetIndex *int, draft domain.StopDraft) (domain.Stop, error) {
	if err := requireSession(userID); err != nil {
		return domain.Stop{}, err
	}
	if targetIndex != nil && *targetIndex < 1 {
		return domain.Stop{}, fmt.Errorf("%w: target index must be >= 1", domain.ErrValidation)
	}

	stop := domain.NewStop(tripID, draft)
	if err := validateStopTimes(stop); err != nil {
		return domain.Stop{}, err
	}

	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.InsertAt: %w", err)
	}

	newID, err := s.stops.InsertAt(ctx, userID, stop, targetIndex)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.InsertAt: %w", err)
	}

	// Re-read rather than assembling the row locally: the procedure may have
	// clamped the target index, and the database owns the assignment.
	created, err := s.stops.GetByID(ctx, userID, newID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.InsertAt: reload: %w", err)
	}
	return created, nil
}

// Move relocates the stop currently at fromIndex to toIndex; the stops
// strictly between the two positions shift by one to close the gap at
// fromIndex and open one at toIndex. Moving a stop onto its own position is
// a no-op, not an error. Returns domain.ErrNotFound when no stop occupies
// fromIndex in a trip visible to the caller.
func (s *StopService) Move(ctx context.Context, userID, tripID uuid.UUID, fromIndex, toIndex int) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	if fromIndex < 1 || toIndex < 1 {
		return fmt.Errorf("%w: stop indexes must be >= 1", domain.ErrValidation)
	}

	if err := s.stops.Move(ctx, userID, tripID, fromIndex, toIndex); err != nil {
		return fmt.Errorf("service.StopService.Move: %w", err)
	}
	return nil
}

// DeleteAndReindex removes the stop and closes the gap: every remaining stop
// with a higher index decreases by one. Returns domain.ErrNotFound when the
// stop does not belong to any trip visible to the caller.
func (s *StopService) DeleteAndReindex(ctx context.Context, userID, stopID uuid.UUID) error {
	if err := requireSession(userID); err != nil {
		return err
	}
	if err := s.stops.DeleteAndReindex(ctx, userID, stopID); err != nil {
		return fmt.Errorf("service.StopService.DeleteAndReindex: %w", err)
	}
	return nil
}

// ListByTripID returns all stops for a trip ordered by stop index ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StopService) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Stop, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTripID: %w", err)
	}
	stops, err := s.stops.ListByTripID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTripID: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// validateStopTimes rejects a departure earlier than the arrival.
func validateStopTimes(stop domain.Stop) error {
	if stop.ArrivedAt != nil && stop.DepartedAt != nil && stop.DepartedAt.Before(*stop.ArrivedAt) {
		return fmt.Errorf("%w: departed_at must not be before arrived_at", domain.ErrValidation)
	}
	return nil
}
