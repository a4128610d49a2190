package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/drivemapz/backend/internal/domain"
)

// registerRequest is the body of POST /auth/register.
type registerRequest struct {
	Email    openapi_types.Email `json:"email"`
	Nickname string              `json:"nickname"`
	Password string              `json:"password"`
}

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

// userResponse is the public view of an account. The password hash never
// appears in any response.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// loginResponse carries the bearer token for subsequent requests.
type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}

	user, err := s.auth.Register(r.Context(), string(req.Email), req.Nickname, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(user))
}

// Login handles POST /auth/login.
// Wrong credentials answer 401 without distinguishing email from password.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "request body is required")
		return
	}

	user, token, err := s.auth.Login(r.Context(), string(req.Email), req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: userToResponse(user)})
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
	}
}
