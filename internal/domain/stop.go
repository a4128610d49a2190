package domain

import (
	"time"

	"github.com/google/uuid"
)

// StopKind distinguishes the two route endpoints from ordinary waypoints.
type StopKind string

const (
	KindStart    StopKind = "start"
	KindEnd      StopKind = "end"
	KindWaypoint StopKind = "stop"
)

// PlaceType classifies where the traveller stays at an ordinary waypoint.
type PlaceType string

const (
	PlaceCampsite   PlaceType = "campsite"
	PlaceCamperArea PlaceType = "camper_area"
	PlaceParking    PlaceType = "parking"
)

// Coordinate is a geographic point. Latitude and longitude always travel
// together; a stop either has a full coordinate or none at all.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Stop is one planned waypoint in a trip, as read back from the database.
// Index is the 1-based position within the trip; for any trip the set of
// indexes is always dense and contiguous ({1..N}). Index is assigned and
// renumbered exclusively by the insert/move/delete stored procedures —
// no Go code ever computes it.
//
// PlaceType, PricePerNight, and Paid are only ever non-nil for KindWaypoint
// stops: the StopDraft variants make it impossible to submit them for a
// start or end stop.
type Stop struct {
	ID            uuid.UUID
	TripID        uuid.UUID
	Index         int
	Kind          StopKind
	Title         string
	Notes         string
	Coordinate    *Coordinate
	PlaceType     *PlaceType
	PricePerNight *float64
	Paid          *bool
	ArrivedAt     *time.Time
	DepartedAt    *time.Time
	CreatedAt     time.Time
}

// StopDraft is the closed set of payloads accepted by the insert-at-position
// operation. Exactly three types implement it: StartDraft, EndDraft, and
// WaypointDraft. Each variant carries only the fields that are legal for its
// kind, so the "no stay fields on start/end stops" rule is a compile-time
// property rather than a runtime nil-out.
type StopDraft interface {
	Kind() StopKind
	// base returns the fields shared by every variant.
	base() stopBase
}

// stopBase holds the fields common to all three draft variants.
type stopBase struct {
	Title      string
	Notes      string
	Coordinate *Coordinate
	ArrivedAt  *time.Time
	DepartedAt *time.Time
}

// StartDraft is the payload for the trip's departure point.
type StartDraft struct {
	Title      string
	Notes      string
	Coordinate *Coordinate
	ArrivedAt  *time.Time
	DepartedAt *time.Time
}

func (StartDraft) Kind() StopKind { return KindStart }
func (d StartDraft) base() stopBase {
	return stopBase{d.Title, d.Notes, d.Coordinate, d.ArrivedAt, d.DepartedAt}
}

// EndDraft is the payload for the trip's final destination.
type EndDraft struct {
	Title      string
	Notes      string
	Coordinate *Coordinate
	ArrivedAt  *time.Time
	DepartedAt *time.Time
}

func (EndDraft) Kind() StopKind { return KindEnd }
func (d EndDraft) base() stopBase {
	return stopBase{d.Title, d.Notes, d.Coordinate, d.ArrivedAt, d.DepartedAt}
}

// WaypointDraft is the payload for an ordinary stop along the route.
// It is the only variant that may carry stay details.
type WaypointDraft struct {
	Title         string
	Notes         string
	Coordinate    *Coordinate
	ArrivedAt     *time.Time
	DepartedAt    *time.Time
	PlaceType     *PlaceType
	PricePerNight *float64
	Paid          *bool
}

func (WaypointDraft) Kind() StopKind { return KindWaypoint }
func (d WaypointDraft) base() stopBase {
	return stopBase{d.Title, d.Notes, d.Coordinate, d.ArrivedAt, d.DepartedAt}
}

// NewStop materializes a draft into a Stop row ready for insertion.
// An empty title falls back to the kind's default label. Index is left zero:
// position assignment belongs to the database procedure.
func NewStop(tripID uuid.UUID, draft StopDraft) Stop {
	b := draft.base()

	s := Stop{
		TripID:     tripID,
		Kind:       draft.Kind(),
		Title:      b.Title,
		Notes:      b.Notes,
		Coordinate: b.Coordinate,
		ArrivedAt:  b.ArrivedAt,
		DepartedAt: b.DepartedAt,
	}
	if s.Title == "" {
		s.Title = defaultTitle(s.Kind)
	}
	if wp, ok := draft.(WaypointDraft); ok {
		s.PlaceType = wp.PlaceType
		s.PricePerNight = wp.PricePerNight
		s.Paid = wp.Paid
	}
	return s
}

// defaultTitle returns the label used when the caller supplies no title.
func defaultTitle(k StopKind) string {
	switch k {
	case KindStart:
		return "Departure point"
	case KindEnd:
		return "End point"
	default:
		return "Stop"
	}
}

// ValidKind reports whether s is one of the three known stop kinds.
func ValidKind(s string) bool {
	switch StopKind(s) {
	case KindStart, KindEnd, KindWaypoint:
		return true
	}
	return false
}

// ValidPlaceType reports whether s is one of the known place types.
func ValidPlaceType(s string) bool {
	switch PlaceType(s) {
	case PlaceCampsite, PlaceCamperArea, PlaceParking:
		return true
	}
	return false
}
