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

// TollLogRepo defines the persistence operations for toll logs.
// Toll logs are append-only; there is no update or delete.
type TollLogRepo interface {
	// Create inserts a new toll log and returns the persisted record.
	Create(ctx context.Context, entry domain.TollLog) (domain.TollLog, error)

	// ListByTripID returns all toll logs for a trip, newest payment first.
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TollLog, error)
}

// pgTollLogRepo is the Postgres implementation of TollLogRepo.
type pgTollLogRepo struct {
	db db
}

// NewTollLogRepo constructs a TollLogRepo backed by the provided db connection.
func NewTollLogRepo(db db) TollLogRepo {
	return &pgTollLogRepo{db: db}
}

const tollColumns = `
	id, user_id, trip_id, paid_at, country_code, road_name, amount, notes, created_at`

func (r *pgTollLogRepo) Create(ctx context.Context, entry domain.TollLog) (domain.TollLog, error) {
	const q = `
		INSERT INTO toll_logs
			(user_id, trip_id, paid_at, country_code, road_name, amount, notes)
		VALUES
			(@user_id, @trip_id, @paid_at, @country_code, @road_name, @amount, @notes)
		RETURNING ` + tollColumns

	args := pgx.NamedArgs{
		"user_id":      entry.UserID,
		"trip_id":      entry.TripID,
		"paid_at":      entry.PaidAt,
		"country_code": entry.CountryCode,
		"road_name":    entry.RoadName,
		"amount":       entry.Amount,
		"notes":        entry.Notes,
	}

	result, err := scanTollLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TollLog{}, fmt.Errorf("repo.TollLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTollLogRepo) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TollLog, error) {
	const q = `
		SELECT ` + tollColumns + `
		FROM toll_logs
		WHERE trip_id = @trip_id AND user_id = @user_id
		ORDER BY paid_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TollLogRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var entries []domain.TollLog
	for rows.Next() {
		e, err := scanTollLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TollLogRepo.ListByTripID: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TollLogRepo.ListByTripID: rows: %w", err)
	}

	return entries, nil
}

// scanTollLog maps a single database row into a domain.TollLog.
func scanTollLog(s scanner) (domain.TollLog, error) {
	var (
		e      domain.TollLog
		id     pgtype.UUID
		userID pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &tripID, &e.PaidAt, &e.CountryCode,
		&e.RoadName, &e.Amount, &e.Notes, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TollLog{}, domain.ErrNotFound
		}
		return domain.TollLog{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.UserID = uuid.UUID(userID.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)

	return e, nil
}
