package utils

import "teamup/models"

// Authorization predicates. These are the only place permission decisions are
// made; handlers never test permission slices themselves.

// IsAdmin reports whether the identity carries an admin permission.
func IsAdmin(user *models.Identity) bool {
	for _, p := range user.Permissions {
		if p == models.PermissionAdmin || p == models.PermissionSuperAdmin {
			return true
		}
	}
	return false
}

// CanEditNeed allows content and open-state changes: owner only.
func CanEditNeed(user *models.Identity, need *models.TeamNeed) bool {
	return user.UserID == need.OwnerUserID
}

// CanDeleteNeed allows hard deletion: owner or admin.
func CanDeleteNeed(user *models.Identity, need *models.TeamNeed) bool {
	return CanEditNeed(user, need) || IsAdmin(user)
}

// CanViewApplication allows reading a single application: the need's owner or
// the application's own applicant.
func CanViewApplication(user *models.Identity, app *models.TeamApplication, need *models.TeamNeed) bool {
	return user.UserID == need.OwnerUserID || user.UserID == app.ApplicantUserID
}

// CanManageApplication allows accept/reject and mark-read: owner only.
func CanManageApplication(user *models.Identity, need *models.TeamNeed) bool {
	return user.UserID == need.OwnerUserID
}

// CanListNeedApplications allows listing every application on a need: owner only.
func CanListNeedApplications(user *models.Identity, need *models.TeamNeed) bool {
	return user.UserID == need.OwnerUserID
}
