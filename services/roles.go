package services

import "lms/models"

// EffectiveRole derives the access role for a user. Superusers are always
// ADMIN; a user without a profile is treated as LEARNER.
func EffectiveRole(user *models.User, profile *models.Profile) string {
	if user != nil && user.IsSuperuser {
		return models.RoleAdmin
	}
	if profile == nil || !models.IsValidRole(profile.Role) {
		return models.RoleLearner
	}
	return profile.Role
}

// IsAdmin reports whether the user resolves to ADMIN.
func IsAdmin(user *models.User, profile *models.Profile) bool {
	return EffectiveRole(user, profile) == models.RoleAdmin
}

// IsManager reports whether the user resolves to MANAGER or higher.
func IsManager(user *models.User, profile *models.Profile) bool {
	role := EffectiveRole(user, profile)
	return role == models.RoleManager || role == models.RoleAdmin
}
