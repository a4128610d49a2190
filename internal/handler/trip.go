package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/drivemapz/backend/internal/domain"
)

// tripRequest is the body of POST /trips and PUT /trips/{tripId}.
// Dates are plain "2006-01-02" values; openapi_types.Date handles the JSON
// round trip.
type tripRequest struct {
	Name      string              `json:"name"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
}

// tripResponse is the JSON view of a trip.
type tripResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// pagination echoes the effective paging values alongside list results.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}

	created, err := s.trips.Create(r.Context(), sessionUser(r), requestToTrip(uuid.Nil, req))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.ListPaged(r.Context(), sessionUser(r), params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), sessionUser(r), tripID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}

	updated, err := s.trips.Update(r.Context(), sessionUser(r), requestToTrip(tripID, req))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), sessionUser(r), tripID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToTrip(id uuid.UUID, req tripRequest) domain.Trip {
	t := domain.Trip{ID: id, Name: req.Name}
	if req.StartDate != nil {
		sd := req.StartDate.Time
		t.StartDate = &sd
	}
	if req.EndDate != nil {
		ed := req.EndDate.Time
		t.EndDate = &ed
	}
	return t
}

func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
	if t.StartDate != nil {
		resp.StartDate = &openapi_types.Date{Time: *t.StartDate}
	}
	if t.EndDate != nil {
		resp.EndDate = &openapi_types.Date{Time: *t.EndDate}
	}
	return resp
}
