package services

import (
	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
)

// Identity is the authenticated caller, as decoded from the session token.
type Identity struct {
	UserID string
	Email  string
	Role   models.UserRole
}

// ScopeFor maps an identity to the row-visibility predicate for appointments:
// doctors act on rows where they are the doctor, everyone else on rows where
// they are the patient. Admins get no bypass; an admin books and manages
// appointments as a patient would.
func ScopeFor(identity Identity) repositories.Scope {
	if identity.Role == models.RoleDoctor {
		return repositories.Scope{Column: "doctor_id", Value: identity.UserID}
	}
	return repositories.Scope{Column: "patient_id", Value: identity.UserID}
}

// statusTransitions is the full transition table. Completed and cancelled are
// terminal; anything not listed is rejected.
var statusTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusScheduled: {models.StatusCompleted, models.StatusCancelled},
	models.StatusPending:   {models.StatusCompleted, models.StatusCancelled},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
