package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/drivemapz/backend/internal/domain"
)

// StopRepo defines the persistence operations for the ordered stop list.
//
// The three mutations (InsertAt, Move, DeleteAndReindex) are thin calls into
// database stored procedures; all index renumbering happens inside those
// procedures, inside one transaction each. Go code never computes indexes —
// after a mutation the caller re-reads the list and trusts what it gets.
type StopRepo interface {
	// InsertAt invokes insert_stop_at and returns the id of the new row.
	// A nil targetIndex appends at max(existing)+1, computed server-side.
	// Existing stops at or above the target shift up by one.
	// Returns domain.ErrNotFound when the trip is not visible to userID.
	InsertAt(ctx context.Context, userID uuid.UUID, stop domain.Stop, targetIndex *int) (uuid.UUID, error)

	// Move invokes move_stop, relocating the stop at from to position to.
	// Returns domain.ErrNotFound when the trip is not visible or no stop
	// occupies from. A from == to call succeeds without changing anything.
	Move(ctx context.Context, userID, tripID uuid.UUID, from, to int) error

	// DeleteAndReindex invokes delete_stop_and_reindex, removing the stop and
	// closing the index gap. Returns domain.ErrNotFound when the stop does not
	// belong to any trip visible to userID.
	DeleteAndReindex(ctx context.Context, userID, stopID uuid.UUID) error

	// GetByID retrieves one stop, scoped to the user's trips.
	GetByID(ctx context.Context, userID, stopID uuid.UUID) (domain.Stop, error)

	// ListByTripID returns all stops for a trip ordered by stop_index ascending.
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Stop, error)
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

func (r *pgStopRepo) InsertAt(ctx context.Context, userID uuid.UUID, stop domain.Stop, targetIndex *int) (uuid.UUID, error) {
	const q = `
		SELECT insert_stop_at(
			@user_id, @trip_id, @target_index,
			@kind, @title, @notes,
			@lat, @lng,
			@place_type, @price_per_night, @paid,
			@arrived_at, @departed_at)`

	var lat, lng *float64
	if stop.Coordinate != nil {
		lat, lng = &stop.Coordinate.Lat, &stop.Coordinate.Lng
	}

	args := pgx.NamedArgs{
		"user_id":         userID,
		"trip_id":         stop.TripID,
		"target_index":    targetIndex, // NULL appends
		"kind":            string(stop.Kind),
		"title":           stop.Title,
		"notes":           stop.Notes,
		"lat":             lat,
		"lng":             lng,
		"place_type":      stop.PlaceType,
		"price_per_night": stop.PricePerNight,
		"paid":            stop.Paid,
		"arrived_at":      stop.ArrivedAt,
		"departed_at":     stop.DepartedAt,
	}

	var newID pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&newID); err != nil {
		return uuid.Nil, fmt.Errorf("repo.StopRepo.InsertAt: %w", err)
	}
	if !newID.Valid {
		// The procedure returns NULL when the trip is invisible to the caller.
		return uuid.Nil, fmt.Errorf("repo.StopRepo.InsertAt: %w", domain.ErrNotFound)
	}
	return uuid.UUID(newID.Bytes), nil
}

func (r *pgStopRepo) Move(ctx context.Context, userID, tripID uuid.UUID, from, to int) error {
	const q = `SELECT move_stop(@user_id, @trip_id, @from_index, @to_index)`

	args := pgx.NamedArgs{
		"user_id":    userID,
		"trip_id":    tripID,
		"from_index": from,
		"to_index":   to,
	}

	var moved bool
	if err := r.db.QueryRow(ctx, q, args).Scan(&moved); err != nil {
		return fmt.Errorf("repo.StopRepo.Move: %w", err)
	}
	if !moved {
		return fmt.Errorf("repo.StopRepo.Move: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgStopRepo) DeleteAndReindex(ctx context.Context, userID, stopID uuid.UUID) error {
	const q = `SELECT delete_stop_and_reindex(@user_id, @stop_id)`

	var deleted bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "stop_id": stopID}).Scan(&deleted)
	if err != nil {
		return fmt.Errorf("repo.StopRepo.DeleteAndReindex: %w", err)
	}
	if !deleted {
		return fmt.Errorf("repo.StopRepo.DeleteAndReindex: %w", domain.ErrNotFound)
	}
	return nil
}

const stopColumns = `
	s.id, s.trip_id, s.stop_index, s.kind, s.title, s.notes,
	s.lat, s.lng, s.place_type, s.price_per_night, s.paid,
	s.arrived_at, s.departed_at, s.created_at`

func (r *pgStopRepo) GetByID(ctx context.Context, userID, stopID uuid.UUID) (domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM trip_stops s
		JOIN trips t ON t.id = s.trip_id
		WHERE s.id = @stop_id AND t.user_id = @user_id`

	result, err := scanStop(r.db.QueryRow(ctx, q, pgx.NamedArgs{"stop_id": stopID, "user_id": userID}))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM trip_stops s
		JOIN trips t ON t.id = s.trip_id
		WHERE s.trip_id = @trip_id AND t.user_id = @user_id
		ORDER BY s.stop_index ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByTripID: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: rows: %w", err)
	}

	return stops, nil
}

// scanStop maps a single database row into a domain.Stop.
// lat/lng are written together or not at all, so a row with exactly one of
// them set would indicate schema corruption; the pair is only surfaced as a
// Coordinate when both are present.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st        domain.Stop
		id        pgtype.UUID
		tripID    pgtype.UUID
		kind      string
		lat, lng  *float64
		placeType *string
	)

	err := s.Scan(&id, &tripID, &st.Index, &kind, &st.Title, &st.Notes,
		&lat, &lng, &placeType, &st.PricePerNight, &st.Paid,
		&st.ArrivedAt, &st.DepartedAt, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	st.Kind = domain.StopKind(kind)
	if lat != nil && lng != nil {
		st.Coordinate = &domain.Coordinate{Lat: *lat, Lng: *lng}
	}
	if placeType != nil {
		pt := domain.PlaceType(*placeType)
		st.PlaceType = &pt
	}

	return st, nil
}
