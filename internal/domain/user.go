package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns trips. PasswordHash is a bcrypt hash and never
// leaves the repo/service layers.
type User struct {
	ID           uuid.UUID
	Email        string
	Nickname     string
	PasswordHash string
	CreatedAt    time.Time
}

// CamperProfile holds the single vehicle profile a user can configure.
// All fields except the owning user are optional.
type CamperProfile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	VehicleName     *string
	FuelType        *string
	ConsumptionL100 *float64 // litres per 100 km
	TankCapacityL   *float64
	UpdatedAt       time.Time
}
