package models

import "gorm.io/gorm"

// Application workflow statuses. Pending is the only non-terminal state.
const (
	ApplicationPending   = "pending"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
	ApplicationWithdrawn = "withdrawn"
)

// TeamApplication is one user's bid to join a TeamNeed.
type TeamApplication struct {
	gorm.Model
	TeamNeedID uint `gorm:"not null;index" json:"team_need_id"`

	// Applicant snapshot
	ApplicantUserID string `gorm:"not null;index" json:"applicant_user_id"`
	ApplicantEmail  string `gorm:"not null" json:"applicant_email"`
	ApplicantName   string `json:"applicant_name"`

	// Message is public-facing toward the owner and PII-filtered.
	// ContactForOwner is the channel the owner will use to reach the
	// applicant, so it is intentionally not filtered.
	Message         string   `gorm:"not null" json:"message"`
	ContactForOwner string   `gorm:"not null" json:"contact_for_owner"`
	Roles           []string `gorm:"type:jsonb;serializer:json" json:"roles,omitempty"`

	Status        string `gorm:"default:'pending';index" json:"status"`
	IsReadByOwner bool   `gorm:"default:false" json:"is_read_by_owner"`
}

// IsTerminal reports whether the application can no longer change status.
func (a *TeamApplication) IsTerminal() bool {
	return a.Status != ApplicationPending
}

// ValidApplicationStatus reports whether s is one of the workflow statuses.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}
