package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemapz/backend/internal/domain"
)

// ---- POST /trips/{tripId}/track --------------------------------------------

func TestRecordTrackPoint_201(t *testing.T) {
	tripID := uuid.New()
	stored := domain.TrackPoint{
		ID:         uuid.New(),
		TripID:     tripID,
		Lat:        50.85,
		Lng:        4.35,
		CapturedAt: time.Now().UTC(),
	}

	h := newTestRouter(mocks{track: &mockTrackServicer{
		record: func(_ context.Context, userID uuid.UUID, p domain.TrackPoint) (domain.TrackPoint, bool, error) {
			assert.Equal(t, testUserID, userID)
			assert.InDelta(t, 50.85, p.Lat, 1e-9)
			return stored, true, nil
		},
	}})

	rec := doRequest(h, http.MethodPost, "/trips/"+tripID.String()+"/track", jsonBody(t, map[string]any{
		"lat": 50.85,
		"lng": 4.35,
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, stored.ID.String(), resp["id"])
}

func TestRecordTrackPoint_204_WhenThrottled(t *testing.T) {
	h := newTestRouter(mocks{track: &mockTrackServicer{
		record: func(_ context.Context, _ uuid.UUID, _ domain.TrackPoint) (domain.TrackPoint, bool, error) {
			return domain.TrackPoint{}, false, nil
		},
	}})

	rec := doRequest(h, http.MethodPost, "/trips/"+uuid.NewString()+"/track", jsonBody(t, map[string]any{
		"lat": 50.85,
		"lng": 4.35,
	}))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String(), "a throttled point answers with no body")
}

func TestRecordTrackPoint_422_MissingCoordinates(t *testing.T) {
	h := newTestRouter(mocks{track: &mockTrackServicer{}})

	rec := doRequest(h, http.MethodPost, "/trips/"+uuid.NewString()+"/track", jsonBody(t, map[string]any{
		"lat": 50.85,
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET /trips/{tripId}/track ---------------------------------------------

func TestListTrackPoints_200_UsesTrackPageDefaults(t *testing.T) {
	var captured domain.PaginationParams
	h := newTestRouter(mocks{track: &mockTrackServicer{
		listByTripIDPaged: func(_ context.Context, _, _ uuid.UUID, p domain.PaginationParams) ([]domain.TrackPoint, int64, error) {
			captured = p
			return []domain.TrackPoint{}, 0, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/trips/"+uuid.NewString()+"/track", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 1000, captured.Limit, "track listings default to the large page size")
}

func TestListTrackPoints_200_CapsLimit(t *testing.T) {
	var captured domain.PaginationParams
	h := newTestRouter(mocks{track: &mockTrackServicer{
		listByTripIDPaged: func(_ context.Context, _, _ uuid.UUID, p domain.PaginationParams) ([]domain.TrackPoint, int64, error) {
			captured = p
			return []domain.TrackPoint{}, 0, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/trips/"+uuid.NewString()+"/track?limit=999999", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5000, captured.Limit)
}
