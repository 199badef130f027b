package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"app-vet/internal/middleware"
	"app-vet/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/waiting", listWaitingHandler(svc))

		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))
		ar.Delete("/{animalID}", deleteAnimalHandler(svc))
		ar.Post("/{animalID}/claim", claimHandler(svc))
		ar.Post("/{animalID}/schedule", scheduleHandler(svc))
		ar.Post("/{animalID}/validate-token", validateTokenHandler(svc))
		ar.Post("/{animalID}/complete", completeHandler(svc))
	})

	r.Post("/admin/animals/{animalID}/assign", assignHandler(svc))
}

type createAnimalRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Age       *int   `json:"age"`
	Contact   string `json:"contact"`
	Procedure string `json:"procedure"`
}

type updateAnimalRequest struct {
	// Punteros: nil = no tocar.
	Name      *string `json:"name"`
	Species   *string `json:"species"`
	Breed     *string `json:"breed"`
	Age       *int    `json:"age"`
	Contact   *string `json:"contact"`
	Procedure *string `json:"procedure"`
}

type claimRequest struct {
	// Opcional: vacío = la clínica del usuario. Admin debe indicarla.
	ClinicID string `json:"clinic_id"`
}

type scheduleRequest struct {
	// RFC3339 o YYYY-MM-DDTHH:MM (datetime-local)
	ScheduledAt string `json:"scheduled_at"`
}

type validateTokenRequest struct {
	Token string `json:"token"`
}

type assignRequest struct {
	ClinicID string `json:"clinic_id"`
}

type animalResponse struct {
	ID                string     `json:"id"`
	OwnerUserID       string     `json:"owner_user_id"`
	Name              string     `json:"name"`
	Species           string     `json:"species"`
	Breed             string     `json:"breed,omitempty"`
	Age               *int       `json:"age,omitempty"`
	Contact           string     `json:"contact,omitempty"`
	Procedure         string     `json:"procedure,omitempty"`
	ClinicID          string     `json:"clinic_id,omitempty"`
	ScheduledAt       *time.Time `json:"scheduled_at,omitempty"`
	Status            Status     `json:"status"`
	VerificationToken string     `json:"verification_token,omitempty"`
	TokenValidated    bool       `json:"token_validated"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Version           int        `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// actorFrom exige claims; escribe 401 si faltan.
func actorFrom(w http.ResponseWriter, r *http.Request) (ActingUser, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return ActingUser{}, false
	}
	return ActorFromClaims(claims), true
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description El tutor registra un animal que necesita atención. Queda en estado waiting, sin clínica. Autenticación: X-Debug-User-ID/X-Debug-Role (dev) o Authorization: Bearer (prod).
// @Tags animals
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / name y species requeridos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), actor, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Age:       req.Age,
			Contact:   req.Contact,
			Procedure: req.Procedure,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a, actor))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales (dashboard)
// @Description Tutor: sus animales. Clínica: los asignados a su clínica. Admin: todos.
// @Tags animals
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		items, err := svc.ListFor(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items, actor))
	}
}

// listWaitingHandler godoc
// @Summary Cola de animales sin reclamar
// @Tags animals
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /animals/waiting [get]
func listWaitingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		items, err := svc.ListWaiting(r.Context(), actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items, actor))
	}
}

// getAnimalHandler godoc
// @Summary Ver animal
// @Tags animals
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		a, err := svc.Get(r.Context(), actor, chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, actor))
	}
}

// updateAnimalHandler godoc
// @Summary Editar datos del animal
// @Description Solo datos descriptivos. status y clinic_id cambian únicamente por las transiciones. procedure lo editan clínica y admin.
// @Tags animals
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a modificar"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 403 {string} string "forbidden / not owner"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /animals/{animalID} [patch]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAnimalRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), actor, chi.URLParam(r, "animalID"), UpdateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Age:       req.Age,
			Contact:   req.Contact,
			Procedure: req.Procedure,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, actor))
	}
}

// deleteAnimalHandler godoc
// @Summary Borrar animal
// @Description Admin, el tutor dueño o la clínica asignada.
// @Tags animals
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 204
// @Failure 403 {string} string "forbidden / not owner"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [delete]
func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "animalID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// claimHandler godoc
// @Summary Reclamar animal
// @Description Asigna el animal a la clínica en una sola escritura condicional. Si otra clínica ganó, responde 409.
// @Tags animals
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body claimRequest false "clinic_id opcional (obligatorio para admin)"
// @Success 200 {object} animalResponse
// @Failure 403 {string} string "forbidden / not owner"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "already claimed"
// @Router /animals/{animalID}/claim [post]
func claimHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req claimRequest
		if !decodeOptional(w, r, &req) {
			return
		}

		a, err := svc.Claim(r.Context(), actor, chi.URLParam(r, "animalID"), req.ClinicID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, actor))
	}
}

// scheduleHandler godoc
// @Summary Agendar atención
// @Description Solo la clínica asignada, con el animal en awaiting_scheduling. Genera un token de 6 dígitos y avisa al tutor.
// @Tags animals
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body scheduleRequest true "Fecha/hora de la cita"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid datetime"
// @Failure 403 {string} string "forbidden / not owner"
// @Failure 409 {string} string "invalid status transition"
// @Router /animals/{animalID}/schedule [post]
func scheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Schedule(r.Context(), actor, chi.URLParam(r, "animalID"), req.ScheduledAt)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, actor))
	}
}

// validateTokenHandler godoc
// @Summary Validar token del tutor
// @Tags animals
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body validateTokenRequest true "Token de 6 dígitos"
// @Success 200 {object} animalResponse
// @Failure 403 {string} string "forbidden / not owner"
// @Failure 409 {string} string "no token issued"
// @Failure 422 {string} string "invalid verification token"
// @Router /animals/{animalID}/validate-token [post]
func validateTokenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req validateTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.ValidateToken(r.Context(), actor, chi.URLParam(r, "animalID"), req.Token)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, actor))
	}
}

// completeHandler godoc
// @Summary Concluir atención
// @Tags animals
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 403 {string} string "forbidden / not owner"
// @Failure 409 {string} string "invalid status transition"
// @Router /animals/{animalID}/complete [post]
func completeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		a, err := svc.Complete(r.Context(), actor, chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, actor))
	}
}

// assignHandler godoc
// @Summary Asignar clínica (admin)
// @Description Corrección administrativa: cambia la clínica sin tocar estado ni token.
// @Tags admin
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body assignRequest true "Clínica destino"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "clinic_id requerido"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal/clinic not found"
// @Router /admin/animals/{animalID}/assign [post]
func assignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.AssignDirectly(r.Context(), actor, chi.URLParam(r, "animalID"), req.ClinicID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, actor))
	}
}

// decodeOptional acepta body vacío.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrAlreadyClaimed), errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidDateTime), errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidToken):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// El token solo lo ven el tutor dueño y el admin; la clínica lo recibe del tutor.
func toAnimalResponse(a Animal, viewer ActingUser) animalResponse {
	out := animalResponse{
		ID:             a.ID,
		OwnerUserID:    a.OwnerUserID,
		Name:           a.Name,
		Species:        a.Species,
		Breed:          a.Breed,
		Age:            a.Age,
		Contact:        a.Contact,
		Procedure:      a.Procedure,
		ClinicID:       a.ClinicID,
		ScheduledAt:    a.ScheduledAt,
		Status:         a.Status,
		TokenValidated: a.TokenValidated,
		CompletedAt:    a.CompletedAt,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if viewer.Role == auth.RoleAdmin || (viewer.Role == auth.RoleTutor && viewer.ID == a.OwnerUserID) {
		out.VerificationToken = a.VerificationToken
	}
	return out
}

func toAnimalResponses(items []Animal, viewer ActingUser) []animalResponse {
	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimalResponse(a, viewer))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
