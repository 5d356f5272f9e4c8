package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a field name to a human-readable problem with it.
type FieldErrors map[string]string

var validTracks = map[string]bool{
	"web": true, "mobile": true, "ai": true, "game": true, "hardware": true, "other": true,
}

var validStages = map[string]bool{
	"idea": true, "prototype": true, "building": true, "launched": true,
}

// NeedForm carries the user-editable fields of a team need through one
// validation pass.
type NeedForm struct {
	Title        string
	ProjectTrack string
	ProjectStage string
	Brief        string
	RolesNeeded  []string
	HaveRoles    []string
	OtherNeeds   string
	ContactHint  string
}

// ValidateNeedForm checks required fields, length and cardinality bounds, enum
// membership, and the PII filter on public-facing text. With isEdit set,
// required checks are relaxed for fields the caller left empty (the lifecycle
// manager validates the merged view on update, so empty there means "absent").
// The second return reports whether any failure came from the PII filter.
func ValidateNeedForm(f NeedForm, isEdit bool) (FieldErrors, bool) {
	errs := FieldErrors{}
	pii := false

	if f.Title == "" {
		if !isEdit {
			errs["title"] = "title is required"
		}
	} else if n := utf8.RuneCountInString(f.Title); n < TitleMinLen || n > TitleMaxLen {
		errs["title"] = fmt.Sprintf("title must be %d-%d characters", TitleMinLen, TitleMaxLen)
	} else if ok, reason := ValidatePublicField(f.Title); !ok {
		errs["title"] = reason
		pii = true
	}

	if f.ProjectTrack == "" {
		if !isEdit {
			errs["project_track"] = "project track is required"
		}
	} else if !validTracks[f.ProjectTrack] {
		errs["project_track"] = "unknown project track"
	}

	if f.ProjectStage == "" {
		if !isEdit {
			errs["project_stage"] = "project stage is required"
		}
	} else if !validStages[f.ProjectStage] {
		errs["project_stage"] = "unknown project stage"
	}

	if f.Brief == "" {
		if !isEdit {
			errs["brief"] = "brief is required"
		}
	} else if n := utf8.RuneCountInString(f.Brief); n < BriefMinLen || n > BriefMaxLen {
		errs["brief"] = fmt.Sprintf("brief must be %d-%d characters", BriefMinLen, BriefMaxLen)
	} else if ok, reason := ValidatePublicField(f.Brief); !ok {
		errs["brief"] = reason
		pii = true
	}

	if len(f.RolesNeeded) == 0 {
		if !isEdit {
			errs["roles_needed"] = "at least one role is required"
		}
	} else if msg := validateRoleSet(f.RolesNeeded); msg != "" {
		errs["roles_needed"] = msg
	}

	if len(f.HaveRoles) > 0 {
		if msg := validateRoleSet(f.HaveRoles); msg != "" {
			errs["have_roles"] = msg
		}
	}

	if f.OtherNeeds != "" {
		if utf8.RuneCountInString(f.OtherNeeds) > OtherNeedsMaxLen {
			errs["other_needs"] = fmt.Sprintf("other needs must be at most %d characters", OtherNeedsMaxLen)
		} else if ok, reason := ValidatePublicField(f.OtherNeeds); !ok {
			errs["other_needs"] = reason
			pii = true
		}
	}

	// ContactHint is a private-facing field: bounds only, no PII filter.
	if utf8.RuneCountInString(f.ContactHint) > ContactHintMaxLen {
		errs["contact_hint"] = fmt.Sprintf("contact hint must be at most %d characters", ContactHintMaxLen)
	}

	return errs, pii
}

// ApplicationForm carries the user-editable fields of an application.
type ApplicationForm struct {
	Message         string
	ContactForOwner string
	Roles           []string
}

// ValidateApplicationForm checks bounds on both text fields and the PII filter
// on the public-facing message. ContactForOwner is the channel the owner uses
// to reach the applicant, so it gets bounds only.
func ValidateApplicationForm(f ApplicationForm) (FieldErrors, bool) {
	errs := FieldErrors{}
	pii := false

	if n := utf8.RuneCountInString(f.Message); n < MessageMinLen || n > MessageMaxLen {
		errs["message"] = fmt.Sprintf("message must be %d-%d characters", MessageMinLen, MessageMaxLen)
	} else if ok, reason := ValidatePublicField(f.Message); !ok {
		errs["message"] = reason
		pii = true
	}

	if n := utf8.RuneCountInString(f.ContactForOwner); n < ContactForOwnerMinLen || n > ContactForOwnerMaxLen {
		errs["contact_for_owner"] = fmt.Sprintf("contact must be %d-%d characters", ContactForOwnerMinLen, ContactForOwnerMaxLen)
	}

	if len(f.Roles) > 0 {
		if msg := validateRoleSet(f.Roles); msg != "" {
			errs["roles"] = msg
		}
	}

	return errs, pii
}

func validateRoleSet(roles []string) string {
	if len(roles) > MaxRoles {
		return fmt.Sprintf("at most %d roles are allowed", MaxRoles)
	}
	for _, r := range roles {
		if strings.TrimSpace(r) == "" {
			return "role labels must not be empty"
		}
		if utf8.RuneCountInString(r) > RoleLabelMaxLen {
			return fmt.Sprintf("role labels must be at most %d characters", RoleLabelMaxLen)
		}
	}
	return ""
}
