package handler

import (
	"net/http"
	"time"

	"github.com/drivemapz/backend/internal/domain"
)

// trackPointRequest is the body of POST /trips/{tripId}/track.
type trackPointRequest struct {
	Lat        *float64   `json:"lat"`
	Lng        *float64   `json:"lng"`
	AccuracyM  *float64   `json:"accuracy_m,omitempty"`
	Speed      *float64   `json:"speed,omitempty"`
	Heading    *float64   `json:"heading,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// trackPointResponse is the JSON view of a recorded GPS fix.
type trackPointResponse struct {
	ID         string    `json:"id"`
	TripID     string    `json:"trip_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	AccuracyM  *float64  `json:"accuracy_m,omitempty"`
	Speed      *float64  `json:"speed,omitempty"`
	Heading    *float64  `json:"heading,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type trackPointListResponse struct {
	Data       []trackPointResponse `json:"data"`
	Pagination pagination           `json:"pagination"`
}

// RecordTrackPoint handles POST /trips/{tripId}/track.
// Points arriving faster than the per-trip minimum interval are silently
// dropped with 204 so the mobile recorder never has to special-case them.
func (s *Server) RecordTrackPoint(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req trackPointRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}
	if req.Lat == nil || req.Lng == nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "lat and lng are required")
		return
	}

	point := domain.TrackPoint{
		TripID:    tripID,
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		AccuracyM: req.AccuracyM,
		Speed:     req.Speed,
		Heading:   req.Heading,
	}
	if req.CapturedAt != nil {
		point.CapturedAt = *req.CapturedAt
	}

	created, accepted, err := s.track.Record(r.Context(), sessionUser(r), point)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !accepted {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, trackPointToResponse(created))
}

// ListTrackPoints handles GET /trips/{tripId}/track.
// Track listings use a larger page size than the other collections because a
// day of driving produces thousands of points.
func (s *Server) ListTrackPoints(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	params := domain.NewTrackPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	points, total, err := s.track.ListByTripIDPaged(r.Context(), sessionUser(r), tripID, params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data := make([]trackPointResponse, len(points))
	for i, p := range points {
		data[i] = trackPointToResponse(p)
	}
	writeJSON(w, http.StatusOK, trackPointListResponse{
		Data: data,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func trackPointToResponse(p domain.TrackPoint) trackPointResponse {
	return trackPointResponse{
		ID:         p.ID.String(),
		TripID:     p.TripID.String(),
		Lat:        p.Lat,
		Lng:        p.Lng,
		AccuracyM:  p.AccuracyM,
		Speed:      p.Speed,
		Heading:    p.Heading,
		CapturedAt: p.CapturedAt,
		CreatedAt:  p.CreatedAt,
	}
}
