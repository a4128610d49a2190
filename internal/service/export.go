package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
)

// ExportService assembles a full flat export of the user's trips and stops.
type ExportService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, stops repo.StopRepo) *ExportService {
	return &ExportService{trips: trips, stops: stops}
}

// exportPageLimit is the trip page size used while assembling an export.
// It matches the listing endpoint's cap; the export walks pages until the
// reported total is exhausted, so accounts of any size export completely.
const exportPageLimit = 100

// Export returns one ExportRow per stop across all of the user's trips, in
// trip order then stop index order. Trips with no stops contribute one row
// with zero stop fields.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
	var trips []domain.Trip
	for page := 1; ; page++ {
		batch, total, err := s.trips.ListPaged(ctx, userID, domain.PaginationParams{Page: page, Limit: exportPageLimit})
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		trips = append(trips, batch...)
		if int64(len(trips)) >= total || len(batch) == 0 {
			break
		}
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		stops, err := s.stops.ListByTripID(ctx, userID, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: stops for %s: %w", trip.ID, err)
		}

		base := domain.ExportRow{
			TripID:   trip.ID.String(),
			TripName: trip.Name,
		}
		if trip.StartDate != nil {
			base.TripStartDate = trip.StartDate.Format("2006-01-02")
		}
		if trip.EndDate != nil {
			base.TripEndDate = trip.EndDate.Format("2006-01-02")
		}

		if len(stops) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, stop := range stops {
			row := base
			row.StopIndex = stop.Index
			row.StopKind = string(stop.Kind)
			row.StopTitle = stop.Title
			row.StopNotes = stop.Notes
			if stop.Coordinate != nil {
				lat, lng := stop.Coordinate.Lat, stop.Coordinate.Lng
				row.Lat, row.Lng = &lat, &lng
			}
			row.ArrivedAt = stop.ArrivedAt
			row.DepartedAt = stop.DepartedAt
			rows = append(rows, row)
		}
	}

	return rows, nil
}
