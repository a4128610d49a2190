package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrackPoint is one recorded GPS fix. Points are append-only and are produced
// by the live-tracking recorder at a minimum spacing of 20 seconds wall-clock
// between accepted writes.
type TrackPoint struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TripID     uuid.UUID
	Lat        float64
	Lng        float64
	AccuracyM  *float64
	Speed      *float64
	Heading    *float64
	CapturedAt time.Time
	CreatedAt  time.Time
}
