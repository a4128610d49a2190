package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
)

// DefaultTrackMinInterval is the minimum wall-clock spacing between two
// accepted track points for the same user and trip.
const DefaultTrackMinInterval = 20 * time.Second

// TrackService implements business logic for GPS track points.
//
// It throttles writes: a point arriving sooner than the configured interval
// after the last accepted point for the same (user, trip) is dropped
// silently, the same way the original recorder rate-limited on-device. The
// throttle state is in-memory only — it resets on restart, which merely lets
// one early point through. Recording is still an accepted race between two
// browser tabs; whatever order the database serializes is the truth.
type TrackService struct {
	trips  repo.TripRepo
	points repo.TrackPointRepo

	minInterval time.Duration
	now         func() time.Time

	mu       sync.Mutex
	lastSent map[trackKey]time.Time
}

type trackKey struct {
	userID uuid.UUID
	tripID uuid.UUID
}

// NewTrackService constructs a TrackService backed by the provided repos.
// A non-positive minInterval falls back to DefaultTrackMinInterval.
func NewTrackService(trips repo.TripRepo, points repo.TrackPointRepo, minInterval time.Duration) *TrackService {
	if minInterval <= 0 {
		minInterval = DefaultTrackMinInterval
	}
	return &TrackService{
		trips:       trips,
		points:      points,
		minInterval: minInterval,
		now:         time.Now,
		lastSent:    make(map[trackKey]time.Time),
	}
}

// Record appends a track point to a trip. The returned bool is false when the
// point was dropped by the rate limit; that is not an error. A zero
// CapturedAt defaults to now.
func (s *TrackService) Record(ctx context.Context, userID uuid.UUID, point domain.TrackPoint) (domain.TrackPoint, bool, error) {
	if err := requireSession(userID); err != nil {
		return domain.TrackPoint{}, false, err
	}
	if err := validateTrackPoint(point); err != nil {
		return domain.TrackPoint{}, false, err
	}
	if _, err := s.trips.GetByID(ctx, userID, point.TripID); err != nil {
		return domain.TrackPoint{}, false, fmt.Errorf("service.TrackService.Record: %w", err)
	}

	if !s.shouldSendNow(userID, point.TripID) {
		return domain.TrackPoint{}, false, nil
	}

	point.UserID = userID
	if point.CapturedAt.IsZero() {
		point.CapturedAt = s.now().UTC()
	}

	result, err := s.points.Create(ctx, point)
	if err != nil {
		return domain.TrackPoint{}, false, fmt.Errorf("service.TrackService.Record: %w", err)
	}
	return result, true, nil
}

// ListByTripIDPaged returns one page of a trip's track points in capture
// order, plus the total count. Always returns a non-nil slice.
func (s *TrackService) ListByTripIDPaged(ctx context.Context, userID, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TrackPoint, int64, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, 0, fmt.Errorf("service.TrackService.ListByTripIDPaged: %w", err)
	}
	points, total, err := s.points.ListByTripIDPaged(ctx, userID, tripID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TrackService.ListByTripIDPaged: %w", err)
	}
	if points == nil {
		points = []domain.TrackPoint{}
	}
	return points, total, nil
}

// shouldSendNow reports whether enough time has passed since the last
// accepted point for this user/trip, and records the acceptance when so.
func (s *TrackService) shouldSendNow(userID, tripID uuid.UUID) bool {
	key := trackKey{userID: userID, tripID: tripID}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.lastSent[key]; ok && now.Sub(last) < s.minInterval {
		return false
	}
	s.lastSent[key] = now
	return true
}

// validateTrackPoint enforces coordinate ranges.
func validateTrackPoint(point domain.TrackPoint) error {
	if point.Lat < -90 || point.Lat > 90 {
		return fmt.Errorf("%w: lat must be between -90 and 90", domain.ErrValidation)
	}
	if point.Lng < -180 || point.Lng > 180 {
		return fmt.Errorf("%w: lng must be between -180 and 180", domain.ErrValidation)
	}
	if point.AccuracyM != nil && *point.AccuracyM < 0 {
		return fmt.Errorf("%w: accuracy_m must not be negative", domain.ErrValidation)
	}
	return nil
}
