package clinics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"app-vet/internal/middleware"
	"app-vet/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clinics", func(cr chi.Router) {
		cr.Get("/", listClinicsHandler(svc))
		cr.Post("/", createClinicHandler(svc))
		cr.Get("/{clinicID}", getClinicHandler(svc))
		cr.Patch("/{clinicID}", updateClinicHandler(svc))
		cr.Delete("/{clinicID}", deleteClinicHandler(svc))
	})
}

type createClinicRequest struct {
	Name                 string `json:"name"`
	Address              string `json:"address"`
	Phone                string `json:"phone"`
	RepresentativeUserID string `json:"representative_user_id"`
}

type updateClinicRequest struct {
	// Punteros: nil = no tocar. representative_user_id "" desvincula.
	Name                 *string `json:"name"`
	Address              *string `json:"address"`
	Phone                *string `json:"phone"`
	RepresentativeUserID *string `json:"representative_user_id"`
}

type clinicResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Address              string    `json:"address,omitempty"`
	Phone                string    `json:"phone,omitempty"`
	RepresentativeUserID string    `json:"representative_user_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	return claims, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := requireClaims(w, r)
	if !ok {
		return false
	}
	if claims.Role != auth.RoleAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// listClinicsHandler godoc
// @Summary Listar clínicas
// @Tags clinics
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} clinicResponse
// @Failure 401 {string} string "unauthorized"
// @Router /clinics [get]
func listClinicsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]clinicResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClinicResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getClinicHandler godoc
// @Summary Ver clínica
// @Tags clinics
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param clinicID path string true "ID de la clínica"
// @Success 200 {object} clinicResponse
// @Failure 404 {string} string "clinic not found"
// @Router /clinics/{clinicID} [get]
func getClinicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "clinicID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toClinicResponse(c))
	}
}

// createClinicHandler godoc
// @Summary Crear clínica (admin)
// @Tags clinics
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createClinicRequest true "Datos de la clínica"
// @Success 201 {object} clinicResponse
// @Failure 400 {string} string "invalid input / invalid representative user"
// @Failure 403 {string} string "forbidden"
// @Router /clinics [post]
func createClinicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req createClinicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:                 req.Name,
			Address:              req.Address,
			Phone:                req.Phone,
			RepresentativeUserID: req.RepresentativeUserID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toClinicResponse(c))
	}
}

// updateClinicHandler godoc
// @Summary Editar clínica (admin)
// @Tags clinics
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param clinicID path string true "ID de la clínica"
// @Param payload body updateClinicRequest true "Campos a modificar"
// @Success 200 {object} clinicResponse
// @Failure 400 {string} string "invalid input / invalid representative user"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "clinic not found"
// @Router /clinics/{clinicID} [patch]
func updateClinicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateClinicRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "clinicID"), UpdateInput{
			Name:                 req.Name,
			Address:              req.Address,
			Phone:                req.Phone,
			RepresentativeUserID: req.RepresentativeUserID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toClinicResponse(c))
	}
}

// deleteClinicHandler godoc
// @Summary Borrar clínica (admin)
// @Description El representante queda desvinculado. Si hay animales asignados responde 409.
// @Tags clinics
// @Param Authorization header string false "Bearer token en producción"
// @Param clinicID path string true "ID de la clínica"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "clinic not found"
// @Failure 409 {string} string "clinic has assigned animals"
// @Router /clinics/{clinicID} [delete]
func deleteClinicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "clinicID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidRepresentative):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toClinicResponse(c Clinic) clinicResponse {
	return clinicResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Address:              c.Address,
		Phone:                c.Phone,
		RepresentativeUserID: c.UserID,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
