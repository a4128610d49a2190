package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/drivemapz/backend/internal/domain"
)

// camperProfileRequest is the body of PUT /profile. All fields are optional;
// a PUT with an empty body clears the profile back to defaults.
type camperProfileRequest struct {
	VehicleName     *string  `json:"vehicle_name,omitempty"`
	FuelType        *string  `json:"fuel_type,omitempty"`
	ConsumptionL100 *float64 `json:"consumption_l_100km,omitempty"`
	TankCapacityL   *float64 `json:"tank_capacity_l,omitempty"`
}

// camperProfileResponse is the JSON view of the vehicle profile.
type camperProfileResponse struct {
	VehicleName     *string   `json:"vehicle_name,omitempty"`
	FuelType        *string   `json:"fuel_type,omitempty"`
	ConsumptionL100 *float64  `json:"consumption_l_100km,omitempty"`
	TankCapacityL   *float64  `json:"tank_capacity_l,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GetProfile handles GET /profile. A user who never saved a profile gets an
// empty one back rather than a 404.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Get(r.Context(), sessionUser(r))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, camperProfileResponse{})
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(profile))
}

// PutProfile handles PUT /profile. The profile is replaced wholesale; fields
// omitted from the request are cleared.
func (s *Server) PutProfile(w http.ResponseWriter, r *http.Request) {
	var req camperProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}

	saved, err := s.profiles.Save(r.Context(), sessionUser(r), domain.CamperProfile{
		VehicleName:     req.VehicleName,
		FuelType:        req.FuelType,
		ConsumptionL100: req.ConsumptionL100,
		TankCapacityL:   req.TankCapacityL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileToResponse(saved))
}

func profileToResponse(p domain.CamperProfile) camperProfileResponse {
	return camperProfileResponse{
		VehicleName:     p.VehicleName,
		FuelType:        p.FuelType,
		ConsumptionL100: p.ConsumptionL100,
		TankCapacityL:   p.TankCapacityL,
		UpdatedAt:       p.UpdatedAt,
	}
}
