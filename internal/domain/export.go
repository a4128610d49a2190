package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per stop, with trip fields repeated
// for every stop on that trip. Trips with no stops yield one row with zero
// values for all stop fields.
type ExportRow struct {
	// Trip fields — repeated for every stop on the trip.
	TripID        string
	TripName      string
	TripStartDate string // "2006-01-02" formatted date, empty when nil
	TripEndDate   string

	// Stop fields — zero values when the trip has no stops.
	StopIndex  int
	StopKind   string
	StopTitle  string
	Lat        *float64
	Lng        *float64
	ArrivedAt  *time.Time
	DepartedAt *time.Time
	StopNotes  string
}
