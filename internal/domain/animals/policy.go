package animals

import "app-vet/internal/ports/auth"

// Transition identifica una operación del ciclo de vida.
type Transition string

const (
	TransitionCreate         Transition = "create"
	TransitionClaim          Transition = "claim"
	TransitionSchedule       Transition = "schedule"
	TransitionValidateToken  Transition = "validate_token"
	TransitionComplete       Transition = "complete"
	TransitionAssignDirectly Transition = "assign_directly"

	// Edición y baja no cambian el estado; pasan por la misma tabla de permisos.
	TransitionEdit   Transition = "edit"
	TransitionDelete Transition = "delete"
)

// Relationship es la relación del actor con el animal (tutor) o con la clínica en juego.
type Relationship string

const (
	RelNone        Relationship = "none"
	RelOwner       Relationship = "owner"
	RelOwnClinic   Relationship = "own_clinic"
	RelOtherClinic Relationship = "other_clinic"
)

var allRelationships = []Relationship{RelNone, RelOwner, RelOwnClinic, RelOtherClinic}

// Permits es la tabla rol × relación → transición, sin mirar el estado.
// Admin no agenda ni completa: solo la clínica dueña.
func Permits(role auth.Role, rel Relationship, t Transition) bool {
	switch t {
	case TransitionCreate:
		return role == auth.RoleTutor
	case TransitionClaim, TransitionValidateToken:
		return role == auth.RoleAdmin || (role == auth.RoleClinic && rel == RelOwnClinic)
	case TransitionSchedule, TransitionComplete:
		return role == auth.RoleClinic && rel == RelOwnClinic
	case TransitionAssignDirectly:
		return role == auth.RoleAdmin
	case TransitionEdit, TransitionDelete:
		return role == auth.RoleAdmin ||
			(role == auth.RoleTutor && rel == RelOwner) ||
			(role == auth.RoleClinic && rel == RelOwnClinic)
	default:
		return false
	}
}

// RoleMay indica si el rol puede intentar la transición con alguna relación.
func RoleMay(role auth.Role, t Transition) bool {
	for _, rel := range allRelationships {
		if Permits(role, rel, t) {
			return true
		}
	}
	return false
}

// StateAllows es la máquina de estados. from vacío = animal nuevo.
func StateAllows(from Status, t Transition) bool {
	switch t {
	case TransitionCreate:
		return from == ""
	case TransitionClaim:
		return from == StatusWaiting
	case TransitionSchedule:
		return from == StatusAwaitingScheduling
	case TransitionValidateToken:
		return from == StatusScheduled || from == StatusCompleted
	case TransitionComplete:
		return from == StatusScheduled
	case TransitionAssignDirectly, TransitionEdit, TransitionDelete:
		_, ok := ParseStatus(string(from))
		return ok
	default:
		return false
	}
}

func CanTransition(role auth.Role, rel Relationship, from Status, t Transition) bool {
	return Permits(role, rel, t) && StateAllows(from, t)
}

// relationTo calcula la relación del actor respecto de una clínica (clinicID)
// o, para tutores, respecto del dueño del animal.
func relationTo(actor ActingUser, a Animal, clinicID string) Relationship {
	switch actor.Role {
	case auth.RoleTutor:
		if a.OwnerUserID != "" && a.OwnerUserID == actor.ID {
			return RelOwner
		}
		return RelNone
	case auth.RoleClinic:
		if actor.ClinicID == "" || clinicID == "" {
			return RelNone
		}
		if actor.ClinicID == clinicID {
			return RelOwnClinic
		}
		return RelOtherClinic
	default:
		return RelNone
	}
}
