package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"app-vet/internal/middleware"
	"app-vet/internal/ports/auth"
)

// RegisterRoutes monta /auth y /me. perMinute <= 0 desactiva el rate limit.
// El límite es por IP de r.RemoteAddr: con RealIP activo es la del proxy.
func RegisterRoutes(r chi.Router, svc *Service, perMinute int) {
	r.Route("/auth", func(ar chi.Router) {
		if perMinute > 0 {
			ar.Use(httprate.LimitByIP(perMinute, time.Minute))
		}
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))
	})

	r.Get("/me", meHandler(svc))
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Contact  string `json:"contact"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        userResponse `json:"user"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      auth.Role `json:"role"`
	ClinicID  string    `json:"clinic_id,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type meResponse struct {
	UserID   string        `json:"user_id"`
	Role     auth.Role     `json:"role"`
	ClinicID string        `json:"clinic_id,omitempty"`
	Profile  *userResponse `json:"profile,omitempty"`
}

// registerHandler godoc
// @Summary Registro de tutor
// @Description Alta pública. Siempre crea usuarios con rol tutor; clínicas y admins se crean con vetctl.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Credenciales y contacto"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "invalid input"
// @Failure 409 {string} string "username already taken"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), req.Username, req.Password, req.Contact)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// loginHandler godoc
// @Summary Login
// @Description Devuelve un bearer token HS256. Limitado por IP.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "invalid credentials"
// @Failure 429 {string} string "too many requests"
// @Failure 501 {string} string "token issuing disabled"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			AccessToken: sess.Token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(sess.ExpiresIn / time.Second),
			User:        toUserResponse(sess.User),
		})
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} meResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		out := meResponse{UserID: claims.UserID, Role: claims.Role, ClinicID: claims.ClinicID}

		// En modo dev el usuario puede no existir en el store.
		if u, err := svc.GetByID(r.Context(), claims.UserID); err == nil {
			p := toUserResponse(u)
			out.Profile = &p
			if out.ClinicID == "" {
				out.ClinicID = u.ClinicID
			}
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotClinicUser):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUsernameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrIssuerDisabled):
		http.Error(w, err.Error(), http.StatusNotImplemented)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		ClinicID:  u.ClinicID,
		Contact:   u.Contact,
		CreatedAt: u.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
