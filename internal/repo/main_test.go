package repo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/repo"
	"github.com/drivemapz/backend/testutil"
)

// TestMain applies all pending migrations to the test database once for the
// whole package, so individual tests never think about schema state.
// When TEST_DATABASE_URL is not set, migration is skipped and every test
// skips itself through testutil.NewPool.
func TestMain(m *testing.M) {
	testutil.MustMigrateUp()
	os.Exit(m.Run())
}

// newTestTx begins one transaction on the shared pool and rolls it back when
// the test finishes. All repos constructed on the returned tx see each
// other's writes but leave the database untouched.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// mustCreateUser inserts an account with a unique email and returns it.
func mustCreateUser(t *testing.T, tx pgx.Tx) domain.User {
	t.Helper()
	user, err := repo.NewUserRepo(tx).Create(context.Background(), domain.User{
		Email:        uuid.NewString() + "@example.com",
		Nickname:     "tester",
		PasswordHash: "$2a$04$notarealhashbutgoodenoughfortests",
	})
	require.NoError(t, err, "create user")
	return user
}

// mustCreateTrip inserts a trip owned by userID.
func mustCreateTrip(t *testing.T, tx pgx.Tx, userID uuid.UUID) domain.Trip {
	t.Helper()
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	trip, err := repo.NewTripRepo(tx).Create(context.Background(), domain.Trip{
		UserID:    userID,
		Name:      "Ardennes loop",
		StartDate: &start,
	})
	require.NoError(t, err, "create trip")
	return trip
}

// mustInsertWaypoint appends a waypoint stop and returns its id.
func mustInsertWaypoint(t *testing.T, stops repo.StopRepo, userID, tripID uuid.UUID, title string) uuid.UUID {
	t.Helper()
	id, err := stops.InsertAt(context.Background(), userID, domain.Stop{
		TripID: tripID,
		Kind:   domain.KindWaypoint,
		Title:  title,
	}, nil)
	require.NoError(t, err, "insert stop %q", title)
	return id
}

func floatPtr(v float64) *float64 { return &v }
