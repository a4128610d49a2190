package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
)

func TestTrackPointRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	user := mustCreateUser(t, tx)
	trip := mustCreateTrip(t, tx, user.ID)

	captured := time.Date(2025, 7, 4, 14, 30, 0, 0, time.UTC)
	got, err := repo.NewTrackPointRepo(tx).Create(ctx, domain.TrackPoint{
		UserID:     user.ID,
		TripID:     trip.ID,
		Lat:        50.4674,
		Lng:        4.8720,
		AccuracyM:  floatPtr(8.0),
		Speed:      floatPtr(23.6),
		CapturedAt: captured,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.InDelta(t, 50.4674, got.Lat, 1e-9)
	require.NotNil(t, got.AccuracyM)
	assert.InDelta(t, 8.0, *got.AccuracyM, 1e-9)
	assert.Nil(t, got.Heading)
	assert.True(t, got.CapturedAt.Equal(captured))
}

func TestTrackPointRepo_ListByTripIDPaged_OrderedByCaptureTime(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	user := mustCreateUser(t, tx)
	trip := mustCreateTrip(t, tx, user.ID)
	track := repo.NewTrackPointRepo(tx)

	base := time.Date(2025, 7, 4, 14, 0, 0, 0, time.UTC)
	// Insert out of order; the listing must come back in capture order.
	for _, offset := range []time.Duration{40 * time.Second, 0, 20 * time.Second} {
		_, err := track.Create(ctx, domain.TrackPoint{
			UserID:     user.ID,
			TripID:     trip.ID,
			Lat:        50.0,
			Lng:        4.0,
			CapturedAt: base.Add(offset),
		})
		require.NoError(t, err)
	}

	got, total, err := track.ListByTripIDPaged(ctx, user.ID, trip.ID, domain.PaginationParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, got, 3)
	assert.True(t, got[0].CapturedAt.Before(got[1].CapturedAt))
	assert.True(t, got[1].CapturedAt.Before(got[2].CapturedAt))
}

func TestTrackPointRepo_ListByTripIDPaged_PagesThroughResults(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	user := mustCreateUser(t, tx)
	trip := mustCreateTrip(t, tx, user.ID)
	track := repo.NewTrackPointRepo(tx)

	base := time.Date(2025, 7, 4, 14, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := track.Create(ctx, domain.TrackPoint{
			UserID:     user.ID,
			TripID:     trip.ID,
			Lat:        50.0,
			Lng:        4.0,
			CapturedAt: base.Add(time.Duration(i) * 20 * time.Second),
		})
		require.NoError(t, err)
	}

	page2, total, err := track.ListByTripIDPaged(ctx, user.ID, trip.ID, domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page2, 2)
	assert.True(t, page2[0].CapturedAt.Equal(base.Add(40*time.Second)), "page 2 starts at the third point")
}

func TestTrackPointRepo_ListByTripIDPaged_ScopedToUser(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	owner := mustCreateUser(t, tx)
	other := mustCreateUser(t, tx)
	trip := mustCreateTrip(t, tx, owner.ID)
	track := repo.NewTrackPointRepo(tx)

	_, err := track.Create(ctx, domain.TrackPoint{
		UserID: owner.ID, TripID: trip.ID, Lat: 50, Lng: 4, CapturedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	got, total, err := track.ListByTripIDPaged(ctx, other.ID, trip.ID, domain.PaginationParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Len(t, got, 0)
}
