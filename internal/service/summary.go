package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/geo"
	"github.com/drivemapz/backend/internal/repo"
)

// SummaryService derives a trip's distances and money totals from the
// current row snapshot. Everything here is pure computation over freshly
// loaded rows — no intermediate state is ever stored, so a summary can never
// be stale relative to the rows it was computed from.
type SummaryService struct {
	trips repo.TripRepo
	stops repo.StopRepo
	fuel  repo.FuelLogRepo
	tolls repo.TollLogRepo
	track repo.TrackPointRepo
}

// NewSummaryService constructs a SummaryService backed by the provided repos.
func NewSummaryService(trips repo.TripRepo, stops repo.StopRepo, fuel repo.FuelLogRepo, tolls repo.TollLogRepo, track repo.TrackPointRepo) *SummaryService {
	return &SummaryService{trips: trips, stops: stops, fuel: fuel, tolls: tolls, track: track}
}

// ForTrip loads the trip's full row snapshot and computes its summary.
func (s *SummaryService) ForTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.ForTrip: %w", err)
	}

	stops, err := s.stops.ListByTripID(ctx, userID, tripID)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.ForTrip: stops: %w", err)
	}
	fuel, err := s.fuel.ListByTripID(ctx, userID, tripID)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.ForTrip: fuel: %w", err)
	}
	tolls, err := s.tolls.ListByTripID(ctx, userID, tripID)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.ForTrip: tolls: %w", err)
	}
	points, err := s.loadAllTrackPoints(ctx, userID, tripID)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.SummaryService.ForTrip: track: %w", err)
	}

	return Summarize(stops, points, fuel, tolls), nil
}

// trackSnapshotPage is the page size used when loading the full track.
// It matches the listing endpoint's cap.
const trackSnapshotPage = 5000

// loadAllTrackPoints walks the paged track listing until every row for the
// trip is in memory. The paging exists for the map overlay; the aggregator
// needs the whole track or the actual distance comes up short on long trips.
func (s *SummaryService) loadAllTrackPoints(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TrackPoint, error) {
	var points []domain.TrackPoint
	for page := 1; ; page++ {
		batch, total, err := s.track.ListByTripIDPaged(ctx, userID, tripID, domain.PaginationParams{Page: page, Limit: trackSnapshotPage})
		if err != nil {
			return nil, err
		}
		points = append(points, batch...)
		if int64(len(points)) >= total || len(batch) == 0 {
			return points, nil
		}
	}
}

// Summarize computes the full derived view from a row snapshot.
func Summarize(stops []domain.Stop, points []domain.TrackPoint, fuel []domain.FuelLog, tolls []domain.TollLog) domain.TripSummary {
	sum := domain.TripSummary{
		PlannedKm: PlannedDistanceKm(stops),
		ActualKm:  ActualDistanceKm(points),
		FuelTotal: FuelTotal(fuel),
		TollTotal: TollTotal(tolls),
		StayTotal: StayTotal(stops),
	}
	sum.GrandTotal = sum.FuelTotal + sum.TollTotal + sum.StayTotal
	return sum
}

// PlannedDistanceKm is the great-circle length of the planned route: stops in
// index order, stops without a coordinate skipped, haversine between each
// consecutive remaining pair. Zero or one located stop yields 0.
func PlannedDistanceKm(stops []domain.Stop) float64 {
	ordered := make([]domain.Stop, len(stops))
	copy(ordered, stops)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	var pts []domain.Coordinate
	for _, s := range ordered {
		if s.Coordinate != nil {
			pts = append(pts, *s.Coordinate)
		}
	}
	return geo.PathKm(pts)
}

// ActualDistanceKm is the great-circle length of the recorded track: points
// in capture order, haversine between each consecutive pair. Zero or one
// point yields 0.
func ActualDistanceKm(points []domain.TrackPoint) float64 {
	ordered := make([]domain.TrackPoint, len(points))
	copy(ordered, points)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CapturedAt.Before(ordered[j].CapturedAt)
	})

	pts := make([]domain.Coordinate, len(ordered))
	for i, p := range ordered {
		pts[i] = domain.Coordinate{Lat: p.Lat, Lng: p.Lng}
	}
	return geo.PathKm(pts)
}

// FuelTotal sums the amounts paid across all fuel logs; a missing amount
// counts as 0.
func FuelTotal(entries []domain.FuelLog) float64 {
	var total float64
	for _, e := range entries {
		if e.TotalPaid != nil {
			total += *e.TotalPaid
		}
	}
	return total
}

// TollTotal sums the toll amounts across all toll logs.
func TollTotal(entries []domain.TollLog) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// StayTotal sums price-per-night across all stops; only ordinary waypoints
// can carry one, so start/end stops contribute nothing by construction.
func StayTotal(stops []domain.Stop) float64 {
	var total float64
	for _, s := range stops {
		if s.PricePerNight != nil {
			total += *s.PricePerNight
		}
	}
	return total
}
