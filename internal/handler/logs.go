package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
)

// fuelLogRequest is the body of POST /trips/{tripId}/fuel.
// Omitting filled_at stamps the entry with the current time.
type fuelLogRequest struct {
	StopID      *string    `json:"stop_id,omitempty"`
	FilledAt    *time.Time `json:"filled_at,omitempty"`
	CountryCode *string    `json:"country_code,omitempty"`
	OdometerKm  *float64   `json:"odometer_km,omitempty"`
	Liters      *float64   `json:"liters,omitempty"`
	TotalPaid   *float64   `json:"total_paid,omitempty"`
}

// fuelLogResponse is the JSON view of a fuel log entry.
// price_per_l is derived by the database and is read-only.
type fuelLogResponse struct {
	ID            string     `json:"id"`
	TripID        string     `json:"trip_id"`
	StopID        *string    `json:"stop_id,omitempty"`
	FilledAt      time.Time  `json:"filled_at"`
	CountryCode   *string    `json:"country_code,omitempty"`
	OdometerKm    *float64   `json:"odometer_km,omitempty"`
	Liters        *float64   `json:"liters,omitempty"`
	TotalPaid     *float64   `json:"total_paid,omitempty"`
	PricePerLiter *float64   `json:"price_per_l,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// tollLogRequest is the body of POST /trips/{tripId}/tolls.
// Amount is the only required field.
type tollLogRequest struct {
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CountryCode *string    `json:"country_code,omitempty"`
	RoadName    *string    `json:"road_name,omitempty"`
	Amount      *float64   `json:"amount"`
	Notes       *string    `json:"notes,omitempty"`
}

// tollLogResponse is the JSON view of a toll log entry.
type tollLogResponse struct {
	ID          string     `json:"id"`
	TripID      string     `json:"trip_id"`
	PaidAt      time.Time  `json:"paid_at"`
	CountryCode *string    `json:"country_code,omitempty"`
	RoadName    *string    `json:"road_name,omitempty"`
	Amount      float64    `json:"amount"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AddFuelLog handles POST /trips/{tripId}/fuel.
func (s *Server) AddFuelLog(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req fuelLogRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}

	entry := domain.FuelLog{
		TripID:      tripID,
		CountryCode: req.CountryCode,
		OdometerKm:  req.OdometerKm,
		Liters:      req.Liters,
		TotalPaid:   req.TotalPaid,
	}
	if req.FilledAt != nil {
		entry.FilledAt = *req.FilledAt
	}
	if req.StopID != nil {
		stopID, err := uuid.Parse(*req.StopID)
		if err != nil {
			badRequest(w, "invalid stop id")
			return
		}
		entry.StopID = &stopID
	}

	created, err := s.fuel.Add(r.Context(), sessionUser(r), entry)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, fuelLogToResponse(created))
}

// ListFuelLogs handles GET /trips/{tripId}/fuel.
func (s *Server) ListFuelLogs(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	entries, err := s.fuel.ListByTripID(r.Context(), sessionUser(r), tripID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data := make([]fuelLogResponse, len(entries))
	for i, e := range entries {
		data[i] = fuelLogToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string][]fuelLogResponse{"data": data})
}

// AddTollLog handles POST /trips/{tripId}/tolls.
func (s *Server) AddTollLog(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req tollLogRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "amount is required")
		return
	}

	entry := domain.TollLog{
		TripID:      tripID,
		CountryCode: req.CountryCode,
		RoadName:    req.RoadName,
		Amount:      *req.Amount,
		Notes:       req.Notes,
	}
	if req.PaidAt != nil {
		entry.PaidAt = *req.PaidAt
	}

	created, err := s.tolls.Add(r.Context(), sessionUser(r), entry)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tollLogToResponse(created))
}

// ListTollLogs handles GET /trips/{tripId}/tolls.
func (s *Server) ListTollLogs(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	entries, err := s.tolls.ListByTripID(r.Context(), sessionUser(r), tripID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data := make([]tollLogResponse, len(entries))
	for i, e := range entries {
		data[i] = tollLogToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string][]tollLogResponse{"data": data})
}

// --- mapping helpers --------------------------------------------------------

func fuelLogToResponse(e domain.FuelLog) fuelLogResponse {
	resp := fuelLogResponse{
		ID:            e.ID.String(),
		TripID:        e.TripID.String(),
		FilledAt:      e.FilledAt,
		CountryCode:   e.CountryCode,
		OdometerKm:    e.OdometerKm,
		Liters:        e.Liters,
		TotalPaid:     e.TotalPaid,
		PricePerLiter: e.PricePerLiter,
		CreatedAt:     e.CreatedAt,
	}
	if e.StopID != nil {
		sid := e.StopID.String()
		resp.StopID = &sid
	}
	return resp
}

func tollLogToResponse(e domain.TollLog) tollLogResponse {
	return tollLogResponse{
		ID:          e.ID.String(),
		TripID:      e.TripID.String(),
		PaidAt:      e.PaidAt,
		CountryCode: e.CountryCode,
		RoadName:    e.RoadName,
		Amount:      e.Amount,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}
