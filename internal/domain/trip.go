// Package domain contains the core data types for the DriveMapz API.
// This package has zero dependencies on the other internal packages and is
// imported by every one of them (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single logged journey from start to finish.
// A trip is the top-level aggregate; stops, fuel logs, toll logs, and track
// points all belong to exactly one trip and are deleted with it.
// Every trip is owned by exactly one user; reads and writes are always scoped
// by UserID.
type Trip struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	StartDate *time.Time // nil when the trip has no planned dates yet
	EndDate   *time.Time
	CreatedAt time.Time
}
