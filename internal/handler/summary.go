package handler

import (
	"net/http"

	"github.com/drivemapz/backend/internal/domain"
)

// tripSummaryResponse is the JSON view of the derived trip summary.
type tripSummaryResponse struct {
	PlannedKm  float64 `json:"planned_km"`
	ActualKm   float64 `json:"actual_km"`
	FuelTotal  float64 `json:"fuel_total"`
	TollTotal  float64 `json:"toll_total"`
	StayTotal  float64 `json:"stay_total"`
	GrandTotal float64 `json:"grand_total"`
}

// GetTripSummary handles GET /trips/{tripId}/summary.
func (s *Server) GetTripSummary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	summary, err := s.summary.ForTrip(r.Context(), sessionUser(r), tripID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryToResponse(summary))
}

func summaryToResponse(sum domain.TripSummary) tripSummaryResponse {
	return tripSummaryResponse{
		PlannedKm:  sum.PlannedKm,
		ActualKm:   sum.ActualKm,
		FuelTotal:  sum.FuelTotal,
		TollTotal:  sum.TollTotal,
		StayTotal:  sum.StayTotal,
		GrandTotal: sum.GrandTotal,
	}
}
