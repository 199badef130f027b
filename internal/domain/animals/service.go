package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"app-vet/internal/platform/logger"
	"app-vet/internal/platform/metrics"
	"app-vet/internal/ports/auth"
	"app-vet/internal/ports/notify"
)

var ErrClinicNotFound = fmt.Errorf("clinic: %w", ErrNotFound)

// ActingUser es el actor explícito de cada operación (no hay sesión implícita).
type ActingUser struct {
	ID       string
	Role     auth.Role
	ClinicID string
}

func ActorFromClaims(c auth.Claims) ActingUser {
	return ActingUser{ID: c.UserID, Role: c.Role, ClinicID: c.ClinicID}
}

// UserDirectory expone datos de usuarios sin importar el módulo users.
type UserDirectory interface {
	ContactOf(ctx context.Context, userID string) (string, error)
	// ClinicOf devuelve el clinic_id guardado; found=false si el usuario no existe.
	ClinicOf(ctx context.Context, userID string) (clinicID string, found bool, err error)
}

// ClinicDirectory resuelve clínicas sin importar el módulo clinics.
type ClinicDirectory interface {
	// ClinicIDForUser devuelve "" si el usuario no representa ninguna clínica.
	ClinicIDForUser(ctx context.Context, userID string) (string, error)
	Exists(ctx context.Context, clinicID string) (bool, error)
}

type Dependencies struct {
	Users    UserDirectory
	Clinics  ClinicDirectory
	Notifier notify.Notifier
	Tokens   TokenGenerator
	Logger   logger.Logger
	// Location para horarios sin zona. Default UTC.
	Location *time.Location
}

type Service struct {
	repo     Repository
	users    UserDirectory
	clinics  ClinicDirectory
	notifier notify.Notifier
	tokens   TokenGenerator
	log      logger.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewService(repo Repository, deps Dependencies) *Service {
	s := &Service{
		repo:     repo,
		users:    deps.Users,
		clinics:  deps.Clinics,
		notifier: deps.Notifier,
		tokens:   deps.Tokens,
		log:      deps.Logger,
		loc:      deps.Location,
		now:      time.Now,
	}
	if s.tokens == nil {
		s.tokens = NewRandomTokens()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	return s
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Age       *int
	Contact   string
	Procedure string
}

func (s *Service) Create(ctx context.Context, actor ActingUser, in CreateInput) (Animal, error) {
	if !RoleMay(actor.Role, TransitionCreate) {
		return Animal{}, s.record(TransitionCreate, "", actor, ErrForbidden)
	}
	if strings.TrimSpace(actor.ID) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.Age != nil && *in.Age < 0 {
		return Animal{}, ErrInvalidInput
	}

	now := s.now().UTC()
	a := Animal{
		ID:          uuid.NewString(),
		OwnerUserID: actor.ID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Contact:     strings.TrimSpace(in.Contact),
		Procedure:   strings.TrimSpace(in.Procedure),
		Status:      StatusWaiting,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, s.record(TransitionCreate, a.ID, actor, nil)
}

// Get aplica visibilidad: admin todo, tutor lo suyo, clínica lo suyo más la cola sin reclamar.
func (s *Service) Get(ctx context.Context, actor ActingUser, id string) (Animal, error) {
	actor, err := s.resolveActor(ctx, actor)
	if err != nil {
		return Animal{}, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if !visibleTo(actor, a) {
		return Animal{}, ErrForbidden
	}
	return a, nil
}

func visibleTo(actor ActingUser, a Animal) bool {
	switch actor.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleTutor:
		return a.OwnerUserID == actor.ID
	case auth.RoleClinic:
		if actor.ClinicID != "" && a.ClinicID == actor.ClinicID {
			return true
		}
		return !a.Claimed() && a.Status == StatusWaiting
	default:
		return false
	}
}

// ListFor es el listado del dashboard según rol. Más nuevos primero.
func (s *Service) ListFor(ctx context.Context, actor ActingUser) ([]Animal, error) {
	actor, err := s.resolveActor(ctx, actor)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case auth.RoleAdmin:
		return s.repo.List(ctx, ListFilter{})
	case auth.RoleTutor:
		if actor.ID == "" {
			return nil, ErrInvalidInput
		}
		return s.repo.List(ctx, ListFilter{OwnerUserID: actor.ID})
	case auth.RoleClinic:
		if actor.ClinicID == "" {
			return []Animal{}, nil
		}
		return s.repo.List(ctx, ListFilter{ClinicID: actor.ClinicID})
	default:
		return nil, ErrForbidden
	}
}

// ListWaiting devuelve la cola reclamable (waiting y sin clínica).
func (s *Service) ListWaiting(ctx context.Context, actor ActingUser) ([]Animal, error) {
	if actor.Role != auth.RoleClinic && actor.Role != auth.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, ListFilter{Status: StatusWaiting, Unclaimed: true})
}

// Claim asigna el animal a una clínica. clinicID vacío = la clínica del actor.
// Entre claims concurrentes gana exactamente uno; el resto recibe ErrAlreadyClaimed.
func (s *Service) Claim(ctx context.Context, actor ActingUser, id, clinicID string) (Animal, error) {
	actor, err := s.resolveActor(ctx, actor)
	if err != nil {
		return Animal{}, s.record(TransitionClaim, id, actor, err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, s.record(TransitionClaim, id, actor, err)
	}
	if !RoleMay(actor.Role, TransitionClaim) {
		return Animal{}, s.record(TransitionClaim, id, actor, ErrForbidden)
	}
	if a.Claimed() {
		return Animal{}, s.record(TransitionClaim, id, actor, ErrAlreadyClaimed)
	}
	if !StateAllows(a.Status, TransitionClaim) {
		return Animal{}, s.record(TransitionClaim, id, actor, ErrInvalidTransition)
	}

	target := strings.TrimSpace(clinicID)
	if target == "" {
		target = actor.ClinicID
	}
	if target == "" && actor.Role == auth.RoleAdmin {
		return Animal{}, ErrInvalidInput
	}
	if !Permits(actor.Role, relationTo(actor, a, target), TransitionClaim) {
		return Animal{}, s.record(TransitionClaim, id, actor, ErrNotOwner)
	}
	if actor.Role == auth.RoleAdmin {
		if err := s.ensureClinic(ctx, target); err != nil {
			return Animal{}, s.record(TransitionClaim, id, actor, err)
		}
	}

	updated, err := s.repo.Claim(ctx, id, target, s.now().UTC())
	if errors.Is(err, ErrConflict) {
		metrics.AnimalClaimConflictsTotal.Inc()
		s.log.Info("claim lost to concurrent claim", logger.Fields{"animal_id": id, "clinic_id": target, "actor_id": actor.ID})
		return Animal{}, s.record(TransitionClaim, id, actor, ErrAlreadyClaimed)
	}
	if err != nil {
		return Animal{}, s.record(TransitionClaim, id, actor, err)
	}
	return updated, s.record(TransitionClaim, id, actor, nil)
}

// Schedule fija la cita, emite un token nuevo y avisa al tutor.
// El aviso es best-effort: su error se registra y no se devuelve.
func (s *Service) Schedule(ctx context.Context, actor ActingUser, id, rawDateTime string) (Animal, error) {
	actor, err := s.resolveActor(ctx, actor)
	if err != nil {
		return Animal{}, s.record(TransitionSchedule, id, actor, err)
	}

	a, err := s.authorize(ctx, actor, id, TransitionSchedule)
	if err != nil {
		return Animal{}, s.record(TransitionSchedule, id, actor, err)
	}

	at, err := ParseScheduleTime(rawDateTime, s.loc)
	if err != nil {
		return Animal{}, s.record(TransitionSchedule, id, actor, err)
	}

	next := a
	scheduled := at.UTC()
	next.ScheduledAt = &scheduled
	next.Status = StatusScheduled
	next.VerificationToken = s.tokens.Generate()
	next.TokenValidated = false

	if err := s.save(ctx, &next, a.Version); err != nil {
		return Animal{}, s.record(TransitionSchedule, id, actor, err)
	}
	_ = s.record(TransitionSchedule, id, actor, nil)

	s.notifyScheduled(ctx, next)
	return next, nil
}

// ValidateToken compara el código presentado por el tutor. Un mismatch no modifica nada.
func (s *Service) ValidateToken(ctx context.Context, actor ActingUser, id, token string) (Animal, error) {
	actor, err := s.resolveActor(ctx, actor)
	if err != nil {
		return Animal{}, s.record(TransitionValidateToken, id, actor, err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, s.record(TransitionValidateToken, id, actor, err)
	}
	if !RoleMay(actor.Role, TransitionValidateToken) {
		return Animal{}, s.record(TransitionValidateToken, id, actor, ErrForbidden)
	}
	if a.VerificationToken == "" || !StateAllows(a.Status, TransitionValidateToken) {
		return Animal{}, s.record(TransitionValidateToken, id, actor, ErrInvalidTransition)
	}
	if !Permits(actor.Role, relationTo(actor, a, a.ClinicID), TransitionValidateToken) {
		return Animal{}, s.record(TransitionValidateToken, id, actor, ErrNotOwner)
	}

	submitted := strings.TrimSpace(token)
	if submitted == "" || submitted != a.VerificationToken {
		return Animal{}, s.record(TransitionValidateToken, id, actor, ErrInvalidToken)
	}
	if a.TokenValidated {
		return a, nil
	}

	next := a
	next.TokenValidated = true
	if err := s.save(ctx, &next, a.Version); err != nil {
		return Animal{}, s.record(TransitionValidateToken, id, actor, err)
	}
	return next, s.record(TransitionValidateToken, id, actor, nil)
}

// Complete cierra la atención. Marca el token como validado aunque no se haya presentado.
func (s *Service) Complete(ctx context.Context, actor ActingUser, id string) (Animal, error) {
	actor, err := s.resolveActor(ctx, actor)
	if err != nil {
		return Animal{}, s.record(TransitionComplete, id, actor, err)
	}

	a, err := s.authorize(ctx, actor, id, TransitionComplete)
	if err != nil {
		return Animal{}, s.record(TransitionComplete, id, actor, err)
	}

	next := a
	done := s.now().UTC()
	next.Status = StatusCompleted
	next.TokenValidated = true
	next.CompletedAt = &done

	if err := s.save(ctx, &next, a.Version); err != nil {
		return Animal{}, s.record(TransitionComplete, id, actor, err)
	}
	return next, s.record(TransitionComplete, id, actor, nil)
}

// AssignDirectly es la corrección administrativa: cambia clinic_id sin tocar estado ni token.
func (s *Service) AssignDirectly(ctx context.Context, actor ActingUser, id, clinicID string) (Animal, error) {
	a, err := s.authorize(ctx, actor, id, TransitionAssignDirectly)
	if err != nil {
		return Animal{}, s.record(TransitionAssignDirectly, id, actor, err)
	}

	clinicID = strings.TrimSpace(clinicID)
	if clinicID == "" {
		return Animal{}, ErrInvalidInput
	}
	if err := s.ensureClinic(ctx, clinicID); err != nil {
		return Animal{}, s.record(TransitionAssignDirectly, id, actor, err)
	}

	next := a
	next.ClinicID = clinicID
	if err := s.save(ctx, &next, a.Version); err != nil {
		return Animal{}, s.record(TransitionAssignDirectly, id, actor, err)
	}

	s.log.Warn("animal assigned by admin", logger.Fields{
		"animal_id":       id,
		"clinic_id":       clinicID,
		"previous_clinic": a.ClinicID,
		"actor_id":        actor.ID,
	})
	return next, s.record(TransitionAssignDirectly, id, actor, nil)
}

// UpdateInput: nil = no tocar. Estado, clínica y token solo cambian por transiciones.
type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Age       *int
	Contact   *string
	Procedure *string
}

// Update edita los datos descriptivos. El procedimiento lo cambian solo la clínica o el admin.
func (s *Service) Update(ctx context.Context, actor ActingUser, id string, in UpdateInput) (Animal, error) {
	actor, err := s.resolveActor(ctx, actor)
	if err != nil {
		return Animal{}, s.record(TransitionEdit, id, actor, err)
	}

	a, err := s.authorize(ctx, actor, id, TransitionEdit)
	if err != nil {
		return Animal{}, s.record(TransitionEdit, id, actor, err)
	}
	if in.Procedure != nil && actor.Role == auth.RoleTutor {
		return Animal{}, s.record(TransitionEdit, id, actor, ErrForbidden)
	}

	next := a
	if in.Name != nil {
		if next.Name = strings.TrimSpace(*in.Name); next.Name == "" {
			return Animal{}, ErrInvalidInput
		}
	}
	if in.Species != nil {
		if next.Species = strings.TrimSpace(*in.Species); next.Species == "" {
			return Animal{}, ErrInvalidInput
		}
	}
	if in.Breed != nil {
		next.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Animal{}, ErrInvalidInput
		}
		age := *in.Age
		next.Age = &age
	}
	if in.Contact != nil {
		next.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.Procedure != nil {
		next.Procedure = strings.TrimSpace(*in.Procedure)
	}

	if err := s.save(ctx, &next, a.Version); err != nil {
		return Animal{}, s.record(TransitionEdit, id, actor, err)
	}
	return next, s.record(TransitionEdit, id, actor, nil)
}

// Delete borra el registro. Si otra escritura ganó en el medio devuelve ErrInvalidTransition.
func (s *Service) Delete(ctx context.Context, actor ActingUser, id string) error {
	actor, err := s.resolveActor(ctx, actor)
	if err != nil {
		return s.record(TransitionDelete, id, actor, err)
	}

	a, err := s.authorize(ctx, actor, id, TransitionDelete)
	if err != nil {
		return s.record(TransitionDelete, id, actor, err)
	}

	err = s.repo.Delete(ctx, id, a.Version)
	if errors.Is(err, ErrConflict) {
		err = ErrInvalidTransition
	}
	return s.record(TransitionDelete, id, actor, err)
}

// authorize: existe → rol → estado → relación con la clínica del animal.
func (s *Service) authorize(ctx context.Context, actor ActingUser, id string, t Transition) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if !RoleMay(actor.Role, t) {
		return Animal{}, ErrForbidden
	}
	if !StateAllows(a.Status, t) {
		return Animal{}, ErrInvalidTransition
	}
	if !Permits(actor.Role, relationTo(actor, a, a.ClinicID), t) {
		return Animal{}, ErrNotOwner
	}
	return a, nil
}

// save aplica la escritura optimista. Perder contra otra transición = ErrInvalidTransition.
func (s *Service) save(ctx context.Context, next *Animal, expected int) error {
	next.Version = expected + 1
	next.UpdatedAt = s.now().UTC()

	err := s.repo.Update(ctx, *next, expected)
	if errors.Is(err, ErrConflict) {
		return ErrInvalidTransition
	}
	return err
}

func (s *Service) ensureClinic(ctx context.Context, clinicID string) error {
	if s.clinics == nil {
		return nil
	}
	ok, err := s.clinics.Exists(ctx, clinicID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrClinicNotFound
	}
	return nil
}

// resolveActor fija ClinicID de un usuario clínica con lo que dice el store.
// El valor del token es solo una pista: se usa únicamente si el usuario no existe
// en el directorio (modo dev con cabeceras).
func (s *Service) resolveActor(ctx context.Context, actor ActingUser) (ActingUser, error) {
	if actor.Role != auth.RoleClinic || actor.ID == "" {
		return actor, nil
	}

	if s.clinics != nil {
		clinicID, err := s.clinics.ClinicIDForUser(ctx, actor.ID)
		if err != nil {
			return actor, fmt.Errorf("resolve clinic of %s: %w", actor.ID, err)
		}
		if clinicID != "" {
			if actor.ClinicID != "" && actor.ClinicID != clinicID {
				s.log.Info("stale clinic in credentials", logger.Fields{"actor_id": actor.ID, "token_clinic": actor.ClinicID, "clinic_id": clinicID})
			}
			actor.ClinicID = clinicID
			return actor, nil
		}
	}

	if s.users != nil {
		clinicID, found, err := s.users.ClinicOf(ctx, actor.ID)
		if err != nil {
			return actor, fmt.Errorf("resolve clinic of %s: %w", actor.ID, err)
		}
		if found {
			actor.ClinicID = clinicID
		}
	}
	return actor, nil
}

func (s *Service) notifyScheduled(ctx context.Context, a Animal) {
	if s.notifier == nil {
		return
	}
	fields := logger.Fields{"animal_id": a.ID, "owner_user_id": a.OwnerUserID}

	contact := ""
	if s.users != nil && a.OwnerUserID != "" {
		c, err := s.users.ContactOf(ctx, a.OwnerUserID)
		if err != nil {
			s.log.Warn("tutor contact lookup failed", logger.Fields{"animal_id": a.ID, "err": err})
		}
		contact = strings.TrimSpace(c)
	}
	if contact == "" {
		contact = a.Contact
	}
	if contact == "" {
		metrics.NotificationsTotal.WithLabelValues("skipped").Inc()
		s.log.Info("no contact for appointment notification", fields)
		return
	}

	msg := fmt.Sprintf("Seu agendamento para %s foi confirmado. Token: %s", a.Name, a.VerificationToken)
	if err := s.notifier.Send(ctx, contact, msg); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		fields["err"] = err
		s.log.Warn("appointment notification failed", fields)
		return
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
}

// record cuenta el intento y devuelve err tal cual.
func (s *Service) record(t Transition, animalID string, actor ActingUser, err error) error {
	metrics.AnimalTransitionsTotal.WithLabelValues(string(t), resultLabel(err)).Inc()
	if err == nil {
		s.log.Info("animal transition", logger.Fields{
			"transition": string(t),
			"animal_id":  animalID,
			"actor_id":   actor.ID,
			"role":       string(actor.Role),
		})
	}
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotOwner):
		return "not_owner"
	case errors.Is(err, ErrAlreadyClaimed):
		return "already_claimed"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrInvalidDateTime):
		return "invalid_datetime"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
