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

// TrackPointRepo defines the persistence operations for GPS track points.
// Append-only, like the log repos.
type TrackPointRepo interface {
	// Create inserts a new track point and returns the persisted record.
	Create(ctx context.Context, point domain.TrackPoint) (domain.TrackPoint, error)

	// ListByTripIDPaged returns one page of a trip's track points ordered by
	// captured_at ascending, plus the total count.
	ListByTripIDPaged(ctx context.Context, userID, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TrackPoint, int64, error)
}

// pgTrackPointRepo is the Postgres implementation of TrackPointRepo.
type pgTrackPointRepo struct {
	db db
}

// NewTrackPointRepo constructs a TrackPointRepo backed by the provided db connection.
func NewTrackPointRepo(db db) TrackPointRepo {
	return &pgTrackPointRepo{db: db}
}

const trackColumns = `
	id, user_id, trip_id, lat, lng, accuracy_m, speed, heading, captured_at, created_at`

func (r *pgTrackPointRepo) Create(ctx context.Context, point domain.TrackPoint) (domain.TrackPoint, error) {
	const q = `
		INSERT INTO trip_track_points
			(user_id, trip_id, lat, lng, accuracy_m, speed, heading, captured_at)
		VALUES
			(@user_id, @trip_id, @lat, @lng, @accuracy_m, @speed, @heading, @captured_at)
		RETURNING ` + trackColumns

	args := pgx.NamedArgs{
		"user_id":     point.UserID,
		"trip_id":     point.TripID,
		"lat":         point.Lat,
		"lng":         point.Lng,
		"accuracy_m":  point.AccuracyM,
		"speed":       point.Speed,
		"heading":     point.Heading,
		"captured_at": point.CapturedAt,
	}

	result, err := scanTrackPoint(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TrackPoint{}, fmt.Errorf("repo.TrackPointRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTrackPointRepo) ListByTripIDPaged(ctx context.Context, userID, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TrackPoint, int64, error) {
	const countQ = `
		SELECT count(*) FROM trip_track_points
		WHERE trip_id = @trip_id AND user_id = @user_id`

	var total int64
	err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"trip_id": tripID, "user_id": userID}).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TrackPointRepo.ListByTripIDPaged: count: %w", err)
	}

	const q = `
		SELECT ` + trackColumns + `
		FROM trip_track_points
		WHERE trip_id = @trip_id AND user_id = @user_id
		ORDER BY captured_at ASC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TrackPointRepo.ListByTripIDPaged: %w", err)
	}
	defer rows.Close()

	var points []domain.TrackPoint
	for rows.Next() {
		pt, err := scanTrackPoint(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TrackPointRepo.ListByTripIDPaged: scan: %w", err)
		}
		points = append(points, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TrackPointRepo.ListByTripIDPaged: rows: %w", err)
	}

	return points, total, nil
}

// scanTrackPoint maps a single database row into a domain.TrackPoint.
func scanTrackPoint(s scanner) (domain.TrackPoint, error) {
	var (
		p      domain.TrackPoint
		id     pgtype.UUID
		userID pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &tripID, &p.Lat, &p.Lng,
		&p.AccuracyM, &p.Speed, &p.Heading, &p.CapturedAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TrackPoint{}, domain.ErrNotFound
		}
		return domain.TrackPoint{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)

	return p, nil
}
