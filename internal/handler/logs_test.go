package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemapz/backend/internal/domain"
)

// ---- POST /trips/{tripId}/fuel ---------------------------------------------

func TestAddFuelLog_201_EchoesDerivedPrice(t *testing.T) {
	tripID := uuid.New()
	liters := 62.4
	paid := 120.38
	price := 1.929167

	h := newTestRouter(mocks{fuel: &mockFuelServicer{
		add: func(_ context.Context, userID uuid.UUID, entry domain.FuelLog) (domain.FuelLog, error) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, tripID, entry.TripID)
			require.NotNil(t, entry.Liters)
			assert.InDelta(t, liters, *entry.Liters, 1e-9)
			entry.ID = uuid.New()
			entry.PricePerLiter = &price
			entry.CreatedAt = time.Now().UTC()
			return entry, nil
		},
	}})

	rec := doRequest(h, http.MethodPost, "/trips/"+tripID.String()+"/fuel", jsonBody(t, map[string]any{
		"liters":     liters,
		"total_paid": paid,
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, tripID.String(), resp["trip_id"])
	assert.InDelta(t, price, resp["price_per_l"].(float64), 1e-6,
		"price per liter comes back from the database, never from the request")
}

func TestAddFuelLog_201_CarriesStopLink(t *testing.T) {
	stopID := uuid.New()

	h := newTestRouter(mocks{fuel: &mockFuelServicer{
		add: func(_ context.Context, _ uuid.UUID, entry domain.FuelLog) (domain.FuelLog, error) {
			require.NotNil(t, entry.StopID)
			assert.Equal(t, stopID, *entry.StopID)
			entry.ID = uuid.New()
			return entry, nil
		},
	}})

	rec := doRequest(h, http.MethodPost, "/trips/"+uuid.NewString()+"/fuel", jsonBody(t, map[string]any{
		"stop_id": stopID.String(),
		"liters":  40.0,
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddFuelLog_400_BadStopID(t *testing.T) {
	h := newTestRouter(mocks{fuel: &mockFuelServicer{}})

	rec := doRequest(h, http.MethodPost, "/trips/"+uuid.NewString()+"/fuel", jsonBody(t, map[string]any{
		"stop_id": "not-a-uuid",
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddFuelLog_422_FromService(t *testing.T) {
	h := newTestRouter(mocks{fuel: &mockFuelServicer{
		add: func(_ context.Context, _ uuid.UUID, _ domain.FuelLog) (domain.FuelLog, error) {
			return domain.FuelLog{}, fmt.Errorf("%w: liters must not be negative", domain.ErrValidation)
		},
	}})

	rec := doRequest(h, http.MethodPost, "/trips/"+uuid.NewString()+"/fuel", jsonBody(t, map[string]any{
		"liters": -3.0,
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody[map[string]map[string]string](t, rec)
	assert.Equal(t, "validation_error", resp["error"]["code"])
	assert.Equal(t, "liters must not be negative", resp["error"]["message"])
}

// ---- GET /trips/{tripId}/fuel ----------------------------------------------

func TestListFuelLogs_200(t *testing.T) {
	tripID := uuid.New()
	h := newTestRouter(mocks{fuel: &mockFuelServicer{
		listByTripID: func(_ context.Context, userID, gotTripID uuid.UUID) ([]domain.FuelLog, error) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, tripID, gotTripID)
			return []domain.FuelLog{
				{ID: uuid.New(), TripID: tripID, FilledAt: time.Now().UTC()},
				{ID: uuid.New(), TripID: tripID, FilledAt: time.Now().UTC()},
			}, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/trips/"+tripID.String()+"/fuel", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string][]map[string]any](t, rec)
	assert.Len(t, resp["data"], 2)
}

func TestListFuelLogs_404_TripNotFound(t *testing.T) {
	h := newTestRouter(mocks{fuel: &mockFuelServicer{
		listByTripID: func(_ context.Context, _, _ uuid.UUID) ([]domain.FuelLog, error) {
			return nil, domain.ErrNotFound
		},
	}})

	rec := doRequest(h, http.MethodGet, "/trips/"+uuid.NewString()+"/fuel", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- POST /trips/{tripId}/tolls --------------------------------------------

func TestAddTollLog_201(t *testing.T) {
	tripID := uuid.New()

	h := newTestRouter(mocks{tolls: &mockTollServicer{
		add: func(_ context.Context, userID uuid.UUID, entry domain.TollLog) (domain.TollLog, error) {
			assert.Equal(t, testUserID, userID)
			assert.InDelta(t, 14.20, entry.Amount, 1e-9)
			entry.ID = uuid.New()
			entry.CreatedAt = time.Now().UTC()
			return entry, nil
		},
	}})

	rec := doRequest(h, http.MethodPost, "/trips/"+tripID.String()+"/tolls", jsonBody(t, map[string]any{
		"amount":    14.20,
		"road_name": "A7 Autoroute du Soleil",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.InDelta(t, 14.20, resp["amount"].(float64), 1e-9)
	assert.Equal(t, "A7 Autoroute du Soleil", resp["road_name"])
}

func TestAddTollLog_422_MissingAmount(t *testing.T) {
	h := newTestRouter(mocks{tolls: &mockTollServicer{}})

	rec := doRequest(h, http.MethodPost, "/trips/"+uuid.NewString()+"/tolls", jsonBody(t, map[string]any{
		"road_name": "E40",
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody[map[string]map[string]string](t, rec)
	assert.Equal(t, "amount is required", resp["error"]["message"])
}

// ---- GET /trips/{tripId}/tolls ---------------------------------------------

func TestListTollLogs_200_Empty(t *testing.T) {
	h := newTestRouter(mocks{tolls: &mockTollServicer{
		listByTripID: func(_ context.Context, _, _ uuid.UUID) ([]domain.TollLog, error) {
			return []domain.TollLog{}, nil
		},
	}})

	rec := doRequest(h, http.MethodGet, "/trips/"+uuid.NewString()+"/tolls", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string][]map[string]any](t, rec)
	require.NotNil(t, resp["data"])
	assert.Empty(t, resp["data"])
}
