package services

import (
	"errors"

	"lms/models"
)

// Impersonation guard failures, surfaced to the caller as-is.
var (
	ErrNotAuthorized        = errors.New("only admins can impersonate")
	ErrAlreadyImpersonating = errors.New("already impersonating, stop first")
	ErrImpersonateSelf      = errors.New("you are already this user")
	ErrImpersonateSuperuser = errors.New("you cannot impersonate a superuser")
)

// CanImpersonate checks whether actor may start impersonating target.
// alreadyImpersonating reflects the actor's current session: nesting is
// refused, the actor must stop first. Impersonating a superuser is reserved
// for superusers.
func CanImpersonate(actor *models.User, actorProfile *models.Profile, target *models.User, alreadyImpersonating bool) error {
	if !IsAdmin(actor, actorProfile) {
		return ErrNotAuthorized
	}
	if alreadyImpersonating {
		return ErrAlreadyImpersonating
	}
	if actor.ID == target.ID {
		return ErrImpersonateSelf
	}
	if target.IsSuperuser && !actor.IsSuperuser {
		return ErrImpersonateSuperuser
	}
	return nil
}
