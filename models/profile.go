package models

import "gorm.io/gorm"

// Profile is the completed-registration record for a user. A user may hold a
// valid identity token without having a Profile row; posting a need or
// applying to one requires the row to exist.
type Profile struct {
	gorm.Model
	UserID      string `gorm:"uniqueIndex;not null" json:"user_id"`
	Email       string `gorm:"not null" json:"email"`
	DisplayName string `gorm:"not null" json:"display_name"`
	Nickname    string `json:"nickname"`
}
