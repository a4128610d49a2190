package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemapz/backend/internal/domain"
)

func TestGetTripSummary_200(t *testing.T) {
	tripID := uuid.New()
	h := newTestRouter(mocks{summary: &mockSummaryServicer{
		forTrip: func(_ context.Context, userID, gotTripID uuid.UUID) (domain.TripSummary, error) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, tripID, gotTripID)
			return domain.TripSummary{
				PlannedKm:  1240.5,
				ActualKm:   1312.8,
				FuelTotal:  280.40,
				TollTotal:  36.70,
				StayTotal:  175.00,
				GrandTotal: 492.10,
			}, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/trips/"+tripID.String()+"/summary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]float64](t, rec)
	assert.InDelta(t, 1240.5, resp["planned_km"], 1e-9)
	assert.InDelta(t, 1312.8, resp["actual_km"], 1e-9)
	assert.InDelta(t, 280.40, resp["fuel_total"], 1e-9)
	assert.InDelta(t, 36.70, resp["toll_total"], 1e-9)
	assert.InDelta(t, 175.00, resp["stay_total"], 1e-9)
	assert.InDelta(t, 492.10, resp["grand_total"], 1e-9)
}

func TestGetTripSummary_200_ZeroValuesPresent(t *testing.T) {
	// An empty trip still serialises every field, so clients never have to
	// null-check the summary.
	h := newTestRouter(mocks{summary: &mockSummaryServicer{
		forTrip: func(_ context.Context, _, _ uuid.UUID) (domain.TripSummary, error) {
			return domain.TripSummary{}, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/trips/"+uuid.NewString()+"/summary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	for _, key := range []string{"planned_km", "actual_km", "fuel_total", "toll_total", "stay_total", "grand_total"} {
		assert.Contains(t, resp, key)
	}
}

func TestGetTripSummary_404(t *testing.T) {
	h := newTestRouter(mocks{summary: &mockSummaryServicer{
		forTrip: func(_ context.Context, _, _ uuid.UUID) (domain.TripSummary, error) {
			return domain.TripSummary{}, domain.ErrNotFound
		},
	}})

	rec := doRequest(h, http.MethodGet, "/trips/"+uuid.NewString()+"/summary", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
