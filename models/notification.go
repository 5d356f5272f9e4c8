package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification types.
const (
	NotifyApplyReceived = "apply_received"
	NotifyApplyAccepted = "apply_accepted"
	NotifyApplyRejected = "apply_rejected"
	NotifyNeedUpdated   = "need_updated"
	NotifySystem        = "system"
)

// Related entity types for notification references.
const (
	RelatedTeamNeed        = "team_need"
	RelatedTeamApplication = "team_application"
)

// Notification is an in-app, user-addressed event record. Rows are written by
// the notification dispatcher as workflow side effects; only the recipient
// mutates or deletes them.
type Notification struct {
	gorm.Model
	UserID string `gorm:"not null;index" json:"user_id"`

	Type    string `gorm:"not null;index" json:"type"`
	Title   string `gorm:"not null" json:"title"`
	Message string `json:"message"`

	RelatedID   uint   `json:"related_id,omitempty"`
	RelatedType string `json:"related_type,omitempty"`
	ActionURL   string `json:"action_url,omitempty"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`
}
