package domain

import (
	"time"

	"github.com/google/uuid"
)

// FuelLog records one fill-up. Entries are append-only: the API never updates
// or deletes them.
//
// PricePerLiter is derived by the database (total_paid / liters) and is never
// written by Go code; it is nil when either input is missing.
type FuelLog struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	TripID        uuid.UUID
	StopID        *uuid.UUID // optional link to the stop where the fill happened
	FilledAt      time.Time
	CountryCode   *string
	OdometerKm    *float64
	Liters        *float64
	TotalPaid     *float64
	PricePerLiter *float64
	CreatedAt     time.Time
}
