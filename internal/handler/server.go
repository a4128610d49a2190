// Package handler implements the HTTP handlers for the DriveMapz API.
// All handlers are methods on Server; they decode/validate the request,
// call a service, and map domain errors to HTTP status codes. Methods are
// split into resource-specific files (trip.go, stop.go, etc.) but all share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/drivemapz/backend/internal/domain"
	"github.com/drivemapz/backend/internal/middleware"
)

// The service interfaces are defined here, in the consumer package, following
// the Go convention: "accept interfaces, return concrete types". Handler tests
// inject mocks without touching the database or service layer.

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// StopServicer defines the ordered-stop-list operations.
type StopServicer interface {
	InsertAt(ctx context.Context, userID, tripID uuid.UUID, targetIndex *int, draft domain.StopDraft) (domain.Stop, error)
	Move(ctx context.Context, userID, tripID uuid.UUID, fromIndex, toIndex int) error
	DeleteAndReindex(ctx context.Context, userID, stopID uuid.UUID) error
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Stop, error)
}

// FuelServicer defines the fuel log operations.
type FuelServicer interface {
	Add(ctx context.Context, userID uuid.UUID, entry domain.FuelLog) (domain.FuelLog, error)
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.FuelLog, error)
}

// TollServicer defines the toll log operations.
type TollServicer interface {
	Add(ctx context.Context, userID uuid.UUID, entry domain.TollLog) (domain.TollLog, error)
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TollLog, error)
}

// TrackServicer defines the track point operations.
type TrackServicer interface {
	Record(ctx context.Context, userID uuid.UUID, point domain.TrackPoint) (domain.TrackPoint, bool, error)
	ListByTripIDPaged(ctx context.Context, userID, tripID uuid.UUID, p domain.PaginationParams) ([]domain.TrackPoint, int64, error)
}

// SummaryServicer derives the trip summary view.
type SummaryServicer interface {
	ForTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error)
}

// ProfileServicer defines the camper profile operations.
type ProfileServicer interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.CamperProfile, error)
	Save(ctx context.Context, userID uuid.UUID, profile domain.CamperProfile) (domain.CamperProfile, error)
}

// ExportServicer assembles the flat data export.
type ExportServicer interface {
	Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error)
}

// AuthServicer defines registration and login.
type AuthServicer interface {
	Register(ctx context.Context, email, nickname, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	auth     AuthServicer
	trips    TripServicer
	stops    StopServicer
	fuel     FuelServicer
	tolls    TollServicer
	track    TrackServicer
	summary  SummaryServicer
	profiles ProfileServicer
	export   ExportServicer
	spec     []byte
}

// NewServer constructs the Server with all its dependencies.
// spec is the raw OpenAPI document served at /openapi.yaml; pass nil to
// disable that route.
func NewServer(auth AuthServicer, trips TripServicer, stops StopServicer, fuel FuelServicer, tolls TollServicer, track TrackServicer, summary SummaryServicer, profiles ProfileServicer, export ExportServicer, spec []byte) *Server {
	return &Server{
		auth:     auth,
		trips:    trips,
		stops:    stops,
		fuel:     fuel,
		tolls:    tolls,
		track:    track,
		summary:  summary,
		profiles: profiles,
		export:   export,
		spec:     spec,
	}
}

// Routes registers all endpoints on a fresh router.
// requireAuth guards every data route; only health, the spec, and the auth
// endpoints are public.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPISpec)
	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/profile", s.GetProfile)
		r.Put("/profile", s.PutProfile)
		r.Get("/export", s.GetExport)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)

			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Get("/summary", s.GetTripSummary)

				r.Get("/stops", s.ListStops)
				r.Post("/stops", s.InsertStop)
				r.Post("/stops/move", s.MoveStop)
				r.Delete("/stops/{stopId}", s.DeleteStop)

				r.Get("/fuel", s.ListFuelLogs)
				r.Post("/fuel", s.AddFuelLog)

				r.Get("/tolls", s.ListTollLogs)
				r.Post("/tolls", s.AddTollLog)

				r.Get("/track", s.ListTrackPoints)
				r.Post("/track", s.RecordTrackPoint)
			})
		})
	})

	return r
}

// --- shared helpers ---------------------------------------------------------

// sessionUser returns the authenticated user id from the request context.
// The auth middleware guarantees it is set on guarded routes; uuid.Nil means
// the route was wired without the middleware, which the services reject.
func sessionUser(r *http.Request) uuid.UUID {
	return middleware.UserIDFromContext(r.Context())
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

// decodeJSON decodes the request body into v.
// A missing or malformed body is a client error, not a server error.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// queryInt parses an optional integer query parameter, returning nil when the
// parameter is absent or unparsable.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
