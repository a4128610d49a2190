package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/drivemapz/backend/internal/domain"
)

// insertStopRequest is the body of POST /trips/{tripId}/stops.
//
// The wire format is necessarily loose — JSON has no tagged unions — so this
// handler is where the closed domain.StopDraft variants are constructed.
// Stay fields submitted for a start/end stop are rejected here; past this
// point the type system makes the combination unrepresentable.
type insertStopRequest struct {
	TargetIndex   *int       `json:"target_index,omitempty"` // omit to append
	Kind          string     `json:"kind"`
	Title         string     `json:"title,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Lat           *float64   `json:"lat,omitempty"`
	Lng           *float64   `json:"lng,omitempty"`
	PlaceType     *string    `json:"place_type,omitempty"`
	PricePerNight *float64   `json:"price_per_night,omitempty"`
	Paid          *bool      `json:"paid,omitempty"`
	ArrivedAt     *time.Time `json:"arrived_at,omitempty"`
	DepartedAt    *time.Time `json:"departed_at,omitempty"`
}

// moveStopRequest is the body of POST /trips/{tripId}/stops/move.
type moveStopRequest struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

// stopResponse is the JSON view of a stop.
type stopResponse struct {
	ID            string     `json:"id"`
	TripID        string     `json:"trip_id"`
	StopIndex     int        `json:"stop_index"`
	Kind          string     `json:"kind"`
	Title         string     `json:"title"`
	Notes         *string    `json:"notes,omitempty"`
	Lat           *float64   `json:"lat,omitempty"`
	Lng           *float64   `json:"lng,omitempty"`
	PlaceType     *string    `json:"place_type,omitempty"`
	PricePerNight *float64   `json:"price_per_night,omitempty"`
	Paid          *bool      `json:"paid,omitempty"`
	ArrivedAt     *time.Time `json:"arrived_at,omitempty"`
	DepartedAt    *time.Time `json:"departed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ListStops handles GET /trips/{tripId}/stops.
// Stops come back in stop_index order: the full, authoritative sequence.
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	stops, err := s.stops.ListByTripID(r.Context(), sessionUser(r), tripID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data := make([]stopResponse, len(stops))
	for i, st := range stops {
		data[i] = stopToResponse(st)
	}
	writeJSON(w, http.StatusOK, map[string][]stopResponse{"data": data})
}

// InsertStop handles POST /trips/{tripId}/stops.
// Responds 201 with the stop as re-read after the insert; clients should
// reload the full list to observe the renumbered sequence.
func (s *Server) InsertStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req insertStopRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}

	draft, err := requestToDraft(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	created, err := s.stops.InsertAt(r.Context(), sessionUser(r), tripID, req.TargetIndex, draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, stopToResponse(created))
}

// MoveStop handles POST /trips/{tripId}/stops/move.
func (s *Server) MoveStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req moveStopRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}

	if err := s.stops.Move(r.Context(), sessionUser(r), tripID, req.FromIndex, req.ToIndex); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteStop handles DELETE /trips/{tripId}/stops/{stopId}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	stopID, ok := pathUUID(r, "stopId")
	if !ok {
		badRequest(w, "invalid stop id")
		return
	}

	if err := s.stops.DeleteAndReindex(r.Context(), sessionUser(r), stopID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToDraft builds the draft variant matching the requested kind.
// Lat and lng must be submitted together or not at all.
func requestToDraft(req insertStopRequest) (domain.StopDraft, error) {
	if !domain.ValidKind(req.Kind) {
		return nil, fmt.Errorf("%w: kind must be one of start, end, stop", domain.ErrValidation)
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return nil, fmt.Errorf("%w: lat and lng must be provided together", domain.ErrValidation)
	}

	var coord *domain.Coordinate
	if req.Lat != nil {
		coord = &domain.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
	}

	kind := domain.StopKind(req.Kind)
	if kind != domain.KindWaypoint {
		if req.PlaceType != nil || req.PricePerNight != nil || req.Paid != nil {
			return nil, fmt.Errorf("%w: place_type, price_per_night, and paid are only allowed for ordinary stops", domain.ErrValidation)
		}
	}

	switch kind {
	case domain.KindStart:
		return domain.StartDraft{
			Title:      req.Title,
			Notes:      req.Notes,
			Coordinate: coord,
			ArrivedAt:  req.ArrivedAt,
			DepartedAt: req.DepartedAt,
		}, nil
	case domain.KindEnd:
		return domain.EndDraft{
			Title:      req.Title,
			Notes:      req.Notes,
			Coordinate: coord,
			ArrivedAt:  req.ArrivedAt,
			DepartedAt: req.DepartedAt,
		}, nil
	default:
		var placeType *domain.PlaceType
		if req.PlaceType != nil {
			if !domain.ValidPlaceType(*req.PlaceType) {
				return nil, fmt.Errorf("%w: place_type must be one of campsite, camper_area, parking", domain.ErrValidation)
			}
			pt := domain.PlaceType(*req.PlaceType)
			placeType = &pt
		}
		return domain.WaypointDraft{
			Title:         req.Title,
			Notes:         req.Notes,
			Coordinate:    coord,
			ArrivedAt:     req.ArrivedAt,
			DepartedAt:    req.DepartedAt,
			PlaceType:     placeType,
			PricePerNight: req.PricePerNight,
			Paid:          req.Paid,
		}, nil
	}
}

// stopToResponse converts a domain.Stop into its JSON view.
// Empty notes become a nil pointer so the field is omitted rather than sent
// as an empty string.
func stopToResponse(st domain.Stop) stopResponse {
	resp := stopResponse{
		ID:            st.ID.String(),
		TripID:        st.TripID.String(),
		StopIndex:     st.Index,
		Kind:          string(st.Kind),
		Title:         st.Title,
		Notes:         nilIfEmpty(st.Notes),
		PricePerNight: st.PricePerNight,
		Paid:          st.Paid,
		ArrivedAt:     st.ArrivedAt,
		DepartedAt:    st.DepartedAt,
		CreatedAt:     st.CreatedAt,
	}
	if st.Coordinate != nil {
		lat, lng := st.Coordinate.Lat, st.Coordinate.Lng
		resp.Lat, resp.Lng = &lat, &lng
	}
	if st.PlaceType != nil {
		pt := string(*st.PlaceType)
		resp.PlaceType = &pt
	}
	return resp
}

// nilIfEmpty converts an empty string to a nil pointer.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
