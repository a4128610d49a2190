package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemapz/backend/internal/domain"
)

func exportFixture() []domain.ExportRow {
	lat, lng := 48.8566, 2.3522
	arrived := time.Date(2025, 7, 3, 15, 30, 0, 0, time.UTC)
	return []domain.ExportRow{
		{
			TripID:        "f2b9a8e0-1111-4c2a-9e2e-000000000001",
			TripName:      "Summer in Provence",
			TripStartDate: "2025-07-01",
			StopIndex:     1,
			StopKind:      "start",
			StopTitle:     "Departure point",
		},
		{
			TripID:        "f2b9a8e0-1111-4c2a-9e2e-000000000001",
			TripName:      "Summer in Provence",
			TripStartDate: "2025-07-01",
			StopIndex:     2,
			StopKind:      "waypoint",
			StopTitle:     "Paris, porte d'Italie",
			Lat:           &lat,
			Lng:           &lng,
			ArrivedAt:     &arrived,
			StopNotes:     "overnight on the aire",
		},
	}
}

func TestGetExport_200_JSON(t *testing.T) {
	h := newTestRouter(mocks{export: &mockExportServicer{
		export: func(_ context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
			assert.Equal(t, testUserID, userID)
			return exportFixture(), nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	rows := decodeBody[[]map[string]any](t, rec)
	require.Len(t, rows, 2)
	assert.Equal(t, "Summer in Provence", rows[0]["trip_name"])
	assert.Equal(t, "2025-07-01", rows[1]["trip_start_date"])
	assert.Equal(t, "overnight on the aire", rows[1]["stop_notes"])
}

func TestGetExport_200_CSV(t *testing.T) {
	h := newTestRouter(mocks{export: &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID) ([]domain.ExportRow, error) {
			return exportFixture(), nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "drivemapz-export.csv")

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one line per row")
	assert.Equal(t,
		"trip_id,trip_name,trip_start_date,trip_end_date,stop_index,stop_kind,stop_title,lat,lng,arrived_at,departed_at,stop_notes",
		lines[0])
	assert.Contains(t, lines[2], "48.8566")
	assert.Contains(t, lines[2], "2025-07-03T15:30:00Z")
}

func TestGetExport_200_EmptyAccount(t *testing.T) {
	h := newTestRouter(mocks{export: &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID) ([]domain.ExportRow, error) {
			return []domain.ExportRow{}, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	rows := decodeBody[[]map[string]any](t, rec)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGetExport_200_CSVHeaderOnlyWhenEmpty(t *testing.T) {
	h := newTestRouter(mocks{export: &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID) ([]domain.ExportRow, error) {
			return []domain.ExportRow{}, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "trip_id,"))
}
