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

// CamperProfileRepo defines the persistence operations for the per-user
// vehicle profile. A user has at most one profile row.
type CamperProfileRepo interface {
	// GetByUserID retrieves the user's profile.
	// Returns domain.ErrNotFound when the user has never saved one.
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.CamperProfile, error)

	// Upsert creates or replaces the user's profile and returns the stored record.
	Upsert(ctx context.Context, profile domain.CamperProfile) (domain.CamperProfile, error)
}

// pgCamperProfileRepo is the Postgres implementation of CamperProfileRepo.
type pgCamperProfileRepo struct {
	db db
}

// NewCamperProfileRepo constructs a CamperProfileRepo backed by the provided db connection.
func NewCamperProfileRepo(db db) CamperProfileRepo {
	return &pgCamperProfileRepo{db: db}
}

const profileColumns = `
	id, user_id, vehicle_name, fuel_type, consumption_l_per_100km, tank_capacity_l, updated_at`

func (r *pgCamperProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.CamperProfile, error) {
	const q = `
		SELECT ` + profileColumns + `
		FROM camper_profiles
		WHERE user_id = @user_id`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.CamperProfile{}, fmt.Errorf("repo.CamperProfileRepo.GetByUserID: %w", err)
	}
	return result, nil
}

func (r *pgCamperProfileRepo) Upsert(ctx context.Context, profile domain.CamperProfile) (domain.CamperProfile, error) {
	const q = `
		INSERT INTO camper_profiles
			(user_id, vehicle_name, fuel_type, consumption_l_per_100km, tank_capacity_l)
		VALUES
			(@user_id, @vehicle_name, @fuel_type, @consumption, @tank_capacity)
		ON CONFLICT (user_id) DO UPDATE SET
			vehicle_name            = EXCLUDED.vehicle_name,
			fuel_type               = EXCLUDED.fuel_type,
			consumption_l_per_100km = EXCLUDED.consumption_l_per_100km,
			tank_capacity_l         = EXCLUDED.tank_capacity_l,
			updated_at              = now()
		RETURNING ` + profileColumns

	args := pgx.NamedArgs{
		"user_id":       profile.UserID,
		"vehicle_name":  profile.VehicleName,
		"fuel_type":     profile.FuelType,
		"consumption":   profile.ConsumptionL100,
		"tank_capacity": profile.TankCapacityL,
	}

	result, err := scanProfile(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CamperProfile{}, fmt.Errorf("repo.CamperProfileRepo.Upsert: %w", err)
	}
	return result, nil
}

// scanProfile maps a single database row into a domain.CamperProfile.
func scanProfile(s scanner) (domain.CamperProfile, error) {
	var (
		p      domain.CamperProfile
		id     pgtype.UUID
		userID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &p.VehicleName, &p.FuelType,
		&p.ConsumptionL100, &p.TankCapacityL, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CamperProfile{}, domain.ErrNotFound
		}
		return domain.CamperProfile{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	return p, nil
}
