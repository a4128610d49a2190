package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/service"
)

func TestExportService_Export_OneRowPerStop(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	arrived := time.Date(2025, 7, 2, 16, 0, 0, 0, time.UTC)

	svc := service.NewExportService(
		&mockTripRepo{
			listPaged: func(_ context.Context, _ uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
				return []domain.Trip{
					{ID: tripID, UserID: userID, Name: "Alps 2025", StartDate: &start},
				}, 1, nil
			},
		},
		&mockStopRepo{
			listByTripID: func(_ context.Context, _, _ uuid.UUID) ([]domain.Stop, error) {
				return []domain.Stop{
					{Index: 1, Kind: domain.KindStart, Title: "Home", Coordinate: coord(50.85, 4.35)},
					{Index: 2, Kind: domain.KindWaypoint, Title: "Lake Garda", ArrivedAt: &arrived, Notes: "busy"},
				}, nil
			},
		},
	)

	rows, err := svc.Export(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, tripID.String(), rows[0].TripID)
	assert.Equal(t, "Alps 2025", rows[0].TripName)
	assert.Equal(t, "2025-07-01", rows[0].TripStartDate)
	assert.Empty(t, rows[0].TripEndDate, "unset dates export as empty strings")
	assert.Equal(t, 1, rows[0].StopIndex)
	assert.Equal(t, "start", rows[0].StopKind)
	require.NotNil(t, rows[0].Lat)
	assert.InDelta(t, 50.85, *rows[0].Lat, 1e-9)

	assert.Equal(t, "Alps 2025", rows[1].TripName, "trip fields repeat on every stop row")
	assert.Equal(t, 2, rows[1].StopIndex)
	assert.Equal(t, "busy", rows[1].StopNotes)
	require.NotNil(t, rows[1].ArrivedAt)
	assert.Equal(t, arrived, *rows[1].ArrivedAt)
}

func TestExportService_Export_TripWithoutStops(t *testing.T) {
	svc := service.NewExportService(
		&mockTripRepo{
			listPaged: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
				return []domain.Trip{{ID: uuid.New(), Name: "Planned Only"}}, 1, nil
			},
		},
		&mockStopRepo{
			listByTripID: func(_ context.Context, _, _ uuid.UUID) ([]domain.Stop, error) {
				return nil, nil
			},
		},
	)

	rows, err := svc.Export(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Len(t, rows, 1, "a stop-less trip still contributes one row")
	assert.Equal(t, "Planned Only", rows[0].TripName)
	assert.Zero(t, rows[0].StopIndex)
	assert.Empty(t, rows[0].StopKind)
}

func TestExportService_Export_WalksEveryTripPage(t *testing.T) {
	userID := uuid.New()

	// 250 trips: three pages at the 100-row listing cap. The mock honors
	// page and limit the way the real repo does.
	all := make([]domain.Trip, 250)
	for i := range all {
		all[i] = domain.Trip{ID: uuid.New(), UserID: userID, Name: "Trip"}
	}

	pages := 0
	svc := service.NewExportService(
		&mockTripRepo{
			listPaged: func(_ context.Context, _ uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
				pages++
				start := p.Offset()
				if start > len(all) {
					start = len(all)
				}
				end := start + p.Limit
				if end > len(all) {
					end = len(all)
				}
				return all[start:end], int64(len(all)), nil
			},
		},
		&mockStopRepo{
			listByTripID: func(_ context.Context, _, _ uuid.UUID) ([]domain.Stop, error) {
				return nil, nil
			},
		},
	)

	rows, err := svc.Export(context.Background(), userID)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, pages, 3, "an account larger than one page needs multiple reads")
	assert.Len(t, rows, 250, "every trip exports, not just the first page")
}

func TestExportService_Export_NoTrips(t *testing.T) {
	svc := service.NewExportService(
		&mockTripRepo{
			listPaged: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
				return nil, 0, nil
			},
		},
		&mockStopRepo{},
	)

	rows, err := svc.Export(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
