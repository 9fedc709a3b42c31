package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
)

func TestCanImpersonate(t *testing.T) {
	admin := &models.User{Model: gormModel(1)}
	adminProfile := &models.Profile{UserID: 1, Role: models.RoleAdmin}
	superuser := &models.User{Model: gormModel(2), IsSuperuser: true}
	learner := &models.User{Model: gormModel(3)}
	learnerProfile := &models.Profile{UserID: 3, Role: models.RoleLearner}
	target := &models.User{Model: gormModel(4)}

	tests := []struct {
		name                 string
		actor                *models.User
		actorProfile         *models.Profile
		target               *models.User
		alreadyImpersonating bool
		wantErr              error
	}{
		{
			name: "learner refused", actor: learner, actorProfile: learnerProfile,
			target: target, wantErr: ErrNotAuthorized,
		},
		{
			name: "nested impersonation refused", actor: admin, actorProfile: adminProfile,
			target: target, alreadyImpersonating: true, wantErr: ErrAlreadyImpersonating,
		},
		{
			name: "self refused", actor: admin, actorProfile: adminProfile,
			target: admin, wantErr: ErrImpersonateSelf,
		},
		{
			name: "non-superuser cannot impersonate superuser", actor: admin, actorProfile: adminProfile,
			target: superuser, wantErr: ErrImpersonateSuperuser,
		},
		{
			name: "superuser can impersonate superuser target", actor: superuser, actorProfile: nil,
			target: &models.User{Model: gormModel(5), IsSuperuser: true},
		},
		{
			name: "admin impersonates learner", actor: admin, actorProfile: adminProfile,
			target: target,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanImpersonate(tt.actor, tt.actorProfile, tt.target, tt.alreadyImpersonating)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
