package animals

import (
	"strings"
	"time"
)

// Status es el estado del ciclo de vida de un animal.
// @Enum waiting, awaiting_scheduling, scheduled, completed
type Status string

const (
	StatusWaiting            Status = "waiting"
	StatusAwaitingScheduling Status = "awaiting_scheduling"
	StatusScheduled          Status = "scheduled"
	StatusCompleted          Status = "completed"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusWaiting, StatusAwaitingScheduling, StatusScheduled, StatusCompleted:
		return st, true
	default:
		return "", false
	}
}

// Animal es el registro que recorre claim → schedule → complete.
type Animal struct {
	ID          string
	OwnerUserID string // inmutable

	Name      string
	Species   string
	Breed     string
	Age       *int
	Contact   string
	Procedure string

	ClinicID    string // vacío hasta el claim; nunca se limpia
	ScheduledAt *time.Time
	Status      Status

	VerificationToken string
	TokenValidated    bool
	CompletedAt       *time.Time

	// Version se incrementa en cada escritura (concurrencia optimista).
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Claimed indica si ya hay clínica asignada.
func (a Animal) Claimed() bool { return a.ClinicID != "" }
