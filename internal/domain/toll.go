package domain

import (
	"time"

	"github.com/google/uuid"
)

// TollLog records one toll payment. Append-only, like FuelLog.
// Amount is the only required money field in the whole data model.
type TollLog struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TripID      uuid.UUID
	PaidAt      time.Time
	CountryCode *string
	RoadName    *string
	Amount      float64
	Notes       *string
	CreatedAt   time.Time
}
