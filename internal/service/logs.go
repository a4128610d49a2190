package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
)

// FuelLogService implements business logic for fuel log entries.
// Entries are append-only; the only operations are add and list.
type FuelLogService struct {
	trips repo.TripRepo
	stops repo.StopRepo
	fuel  repo.FuelLogRepo
}

// NewFuelLogService constructs a FuelLogService backed by the provided repos.
func NewFuelLogService(trips repo.TripRepo, stops repo.StopRepo, fuel repo.FuelLogRepo) *FuelLogService {
	return &FuelLogService{trips: trips, stops: stops, fuel: fuel}
}

// Add appends a fuel log entry to a trip. A zero FilledAt defaults to now.
// When the entry links to a stop, that stop must belong to the same trip.
func (s *FuelLogService) Add(ctx context.Context, userID uuid.UUID, entry domain.FuelLog) (domain.FuelLog, error) {
	if err := requireSession(userID); err != nil {
		return domain.FuelLog{}, err
	}
	if err := validateFuelLog(entry); err != nil {
		return domain.FuelLog{}, err
	}
	if _, err := s.trips.GetByID(ctx, userID, entry.TripID); err != nil {
		return domain.FuelLog{}, fmt.Errorf("service.FuelLogService.Add: %w", err)
	}
	if entry.StopID != nil {
		stop, err := s.stops.GetByID(ctx, userID, *entry.StopID)
		if err != nil {
			return domain.FuelLog{}, fmt.Errorf("service.FuelLogService.Add: stop: %w", err)
		}
		if stop.TripID != entry.TripID {
			return domain.FuelLog{}, fmt.Errorf("%w: stop belongs to a different trip", domain.ErrValidation)
		}
	}

	entry.UserID = userID
	if entry.FilledAt.IsZero() {
		entry.FilledAt = time.Now().UTC()
	}

	result, err := s.fuel.Create(ctx, entry)
	if err != nil {
		return domain.FuelLog{}, fmt.Errorf("service.FuelLogService.Add: %w", err)
	}
	return result, nil
}

// ListByTripID returns all fuel logs for a trip, newest fill first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FuelLogService) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.FuelLog, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.FuelLogService.ListByTripID: %w", err)
	}
	entries, err := s.fuel.ListByTripID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.FuelLogService.ListByTripID: %w", err)
	}
	if entries == nil {
		return []domain.FuelLog{}, nil
	}
	return entries, nil
}

// validateFuelLog rejects negative quantities. All quantity fields are
// optional; a fill-up with nothing but a timestamp is a valid entry.
func validateFuelLog(entry domain.FuelLog) error {
	if entry.Liters != nil && *entry.Liters < 0 {
		return fmt.Errorf("%w: liters must not be negative", domain.ErrValidation)
	}
	if entry.TotalPaid != nil && *entry.TotalPaid < 0 {
		return fmt.Errorf("%w: total_paid must not be negative", domain.ErrValidation)
	}
	if entry.OdometerKm != nil && *entry.OdometerKm < 0 {
		return fmt.Errorf("%w: odometer_km must not be negative", domain.ErrValidation)
	}
	return nil
}

// TollLogService implements business logic for toll log entries.
type TollLogService struct {
	trips repo.TripRepo
	tolls repo.TollLogRepo
}

// NewTollLogService constructs a TollLogService backed by the provided repos.
func NewTollLogService(trips repo.TripRepo, tolls repo.TollLogRepo) *TollLogService {
	return &TollLogService{trips: trips, tolls: tolls}
}

// Add appends a toll log entry to a trip. Amount is required and must not be
// negative; a zero PaidAt defaults to now.
func (s *TollLogService) Add(ctx context.Context, userID uuid.UUID, entry domain.TollLog) (domain.TollLog, error) {
	if err := requireSession(userID); err != nil {
		return domain.TollLog{}, err
	}
	if entry.Amount < 0 {
		return domain.TollLog{}, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if _, err := s.trips.GetByID(ctx, userID, entry.TripID); err != nil {
		return domain.TollLog{}, fmt.Errorf("service.TollLogService.Add: %w", err)
	}

	entry.UserID = userID
	if entry.PaidAt.IsZero() {
		entry.PaidAt = time.Now().UTC()
	}

	result, err := s.tolls.Create(ctx, entry)
	if err != nil {
		return domain.TollLog{}, fmt.Errorf("service.TollLogService.Add: %w", err)
	}
	return result, nil
}

// ListByTripID returns all toll logs for a trip, newest payment first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TollLogService) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TollLog, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.TollLogService.ListByTripID: %w", err)
	}
	entries, err := s.tolls.ListByTripID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TollLogService.ListByTripID: %w", err)
	}
	if entries == nil {
		return []domain.TollLog{}, nil
	}
	return entries, nil
}
