package models

import "gorm.io/gorm"

// Project track and stage values accepted on a TeamNeed.
const (
	TrackWeb      = "web"
	TrackMobile   = "mobile"
	TrackAI       = "ai"
	TrackGame     = "game"
	TrackHardware = "hardware"
	TrackOther    = "other"

	StageIdea      = "idea"
	StagePrototype = "prototype"
	StageBuilding  = "building"
	StageLaunched  = "launched"
)

// TeamNeed is a recruiting post: one user looking for teammates.
type TeamNeed struct {
	gorm.Model

	// Owner snapshot, captured at creation time and not live-synced.
	OwnerUserID   string `gorm:"not null;index" json:"owner_user_id"`
	OwnerEmail    string `gorm:"not null" json:"owner_email"`
	OwnerName     string `json:"owner_name"`
	OwnerNickname string `json:"owner_nickname"`

	// Content
	Title        string   `gorm:"not null" json:"title"`
	ProjectTrack string   `gorm:"not null;index" json:"project_track"`
	ProjectStage string   `gorm:"not null;index" json:"project_stage"`
	Brief        string   `gorm:"not null" json:"brief"`
	RolesNeeded  []string `gorm:"type:jsonb;serializer:json" json:"roles_needed"`
	HaveRoles    []string `gorm:"type:jsonb;serializer:json" json:"have_roles,omitempty"`
	OtherNeeds   string   `json:"other_needs,omitempty"`

	// ContactHint is shown only to the owner and to accepted applicants. It
	// is expected to carry contact info and is never PII-filtered.
	ContactHint string `json:"contact_hint,omitempty"`

	// Moderation
	IsFlagged  bool   `gorm:"default:false" json:"is_flagged"`
	FlagReason string `json:"flag_reason,omitempty"`

	// Visibility
	IsOpen   bool `gorm:"default:true" json:"is_open"`
	IsHidden bool `gorm:"default:false;index" json:"is_hidden"`

	// Denormalized counters
	ViewCount        int `gorm:"default:0" json:"view_count"`
	ApplicationCount int `gorm:"default:0" json:"application_count"`

	// Relations
	Applications []TeamApplication `gorm:"foreignKey:TeamNeedID" json:"applications,omitempty"`
}
