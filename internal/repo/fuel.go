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

// FuelLogRepo defines the persistence operations for fuel logs.
// Fuel logs are append-only; there is no update or delete.
type FuelLogRepo interface {
	// Create inserts a new fuel log and returns the persisted record,
	// including the DB-derived price_per_l.
	Create(ctx context.Context, entry domain.FuelLog) (domain.FuelLog, error)

	// ListByTripID returns all fuel logs for a trip, newest fill first.
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.FuelLog, error)
}

// pgFuelLogRepo is the Postgres implementation of FuelLogRepo.
type pgFuelLogRepo struct {
	db db
}

// NewFuelLogRepo constructs a FuelLogRepo backed by the provided db connection.
func NewFuelLogRepo(db db) FuelLogRepo {
	return &pgFuelLogRepo{db: db}
}

const fuelColumns = `
	id, user_id, trip_id, stop_id, filled_at, country_code,
	odometer_km, liters, total_paid, price_per_l, created_at`

func (r *pgFuelLogRepo) Create(ctx context.Context, entry domain.FuelLog) (domain.FuelLog, error) {
	// price_per_l is a generated column; it is never part of the INSERT.
	const q = `
		INSERT INTO fuel_logs
			(user_id, trip_id, stop_id, filled_at, country_code, odometer_km, liters, total_paid)
		VALUES
			(@user_id, @trip_id, @stop_id, @filled_at, @country_code, @odometer_km, @liters, @total_paid)
		RETURNING ` + fuelColumns

	args := pgx.NamedArgs{
		"user_id":      entry.UserID,
		"trip_id":      entry.TripID,
		"stop_id":      entry.StopID,
		"filled_at":    entry.FilledAt,
		"country_code": entry.CountryCode,
		"odometer_km":  entry.OdometerKm,
		"liters":       entry.Liters,
		"total_paid":   entry.TotalPaid,
	}

	result, err := scanFuelLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.FuelLog{}, fmt.Errorf("repo.FuelLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFuelLogRepo) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.FuelLog, error) {
	const q = `
		SELECT ` + fuelColumns + `
		FROM fuel_logs
		WHERE trip_id = @trip_id AND user_id = @user_id
		ORDER BY filled_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.FuelLogRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var entries []domain.FuelLog
	for rows.Next() {
		e, err := scanFuelLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.FuelLogRepo.ListByTripID: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.FuelLogRepo.ListByTripID: rows: %w", err)
	}

	return entries, nil
}

// scanFuelLog maps a single database row into a domain.FuelLog.
func scanFuelLog(s scanner) (domain.FuelLog, error) {
	var (
		e      domain.FuelLog
		id     pgtype.UUID
		userID pgtype.UUID
		tripID pgtype.UUID
		stopID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &tripID, &stopID, &e.FilledAt, &e.CountryCode,
		&e.OdometerKm, &e.Liters, &e.TotalPaid, &e.PricePerLiter, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FuelLog{}, domain.ErrNotFound
		}
		return domain.FuelLog{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.UserID = uuid.UUID(userID.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	if stopID.Valid {
		sid := uuid.UUID(stopID.Bytes)
		e.StopID = &sid
	}

	return e, nil
}
