package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"teamup/middleware"
	"teamup/models"
	"teamup/repository"
	"teamup/utils"
)

// UpdateNeed merges the fields present in the request over the stored need and
// re-validates the merged view. Content and open-state changes are owner-only;
// the hidden flag is an admin moderation control. OwnerUserID can never
// change.
func (nc *NeedController) UpdateNeed(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	id := utils.ParseUint(c.Params("id"))

	need, err := nc.Needs.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNeedNotFound, "Need not found")
		}
		nc.Logger.WithError(err).Error("failed to fetch need")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch need")
	}

	var input struct {
		Title        *string   `json:"title"`
		ProjectTrack *string   `json:"project_track"`
		ProjectStage *string   `json:"project_stage"`
		Brief        *string   `json:"brief"`
		RolesNeeded  *[]string `json:"roles_needed"`
		HaveRoles    *[]string `json:"have_roles"`
		OtherNeeds   *string   `json:"other_needs"`
		ContactHint  *string   `json:"contact_hint"`
		IsOpen       *bool     `json:"is_open"`
		IsHidden     *bool     `json:"is_hidden"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "Invalid request body")
	}

	contentChange := input.Title != nil || input.ProjectTrack != nil || input.ProjectStage != nil ||
		input.Brief != nil || input.RolesNeeded != nil || input.HaveRoles != nil ||
		input.OtherNeeds != nil || input.ContactHint != nil || input.IsOpen != nil

	if contentChange && !utils.CanEditNeed(identity, need) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Only the owner may edit this need")
	}
	if input.IsHidden != nil && !utils.IsAdmin(identity) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Only admins may hide a need")
	}

	if input.Title != nil {
		need.Title = *input.Title
	}
	if input.ProjectTrack != nil {
		need.ProjectTrack = *input.ProjectTrack
	}
	if input.ProjectStage != nil {
		need.ProjectStage = *input.ProjectStage
	}
	if input.Brief != nil {
		need.Brief = *input.Brief
	}
	if input.RolesNeeded != nil {
		need.RolesNeeded = *input.RolesNeeded
	}
	if input.HaveRoles != nil {
		need.HaveRoles = *input.HaveRoles
	}
	if input.OtherNeeds != nil {
		need.OtherNeeds = *input.OtherNeeds
	}
	if input.ContactHint != nil {
		need.ContactHint = *input.ContactHint
	}
	if input.IsOpen != nil {
		need.IsOpen = *input.IsOpen
	}
	if input.IsHidden != nil {
		need.IsHidden = *input.IsHidden
	}

	// The merged view is complete, so required checks stay strict: a PATCH
	// cannot clear a mandatory field.
	fieldErrs, pii := utils.ValidateNeedForm(utils.NeedForm{
		Title:        need.Title,
		ProjectTrack: need.ProjectTrack,
		ProjectStage: need.ProjectStage,
		Brief:        need.Brief,
		RolesNeeded:  need.RolesNeeded,
		HaveRoles:    need.HaveRoles,
		OtherNeeds:   need.OtherNeeds,
		ContactHint:  need.ContactHint,
	}, false)
	if len(fieldErrs) > 0 {
		return utils.ValidationResponse(c, fieldErrs, pii)
	}

	flagged, matched := utils.CheckSensitiveContent(
		strings.Join([]string{need.Title, need.Brief, need.OtherNeeds}, "\n"))
	need.IsFlagged = flagged
	need.FlagReason = utils.FlagReason(matched)

	if err := nc.Needs.Save(c.Context(), need); err != nil {
		nc.Logger.WithError(err).Error("failed to update need")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to update need")
	}

	if contentChange {
		nc.notifyApplicants(c, need)
	}

	return c.JSON(utils.SuccessResponse(need))
}

// notifyApplicants pushes a need_updated note to everyone still involved with
// the post. Best-effort.
func (nc *NeedController) notifyApplicants(c *fiber.Ctx, need *models.TeamNeed) {
	apps, err := nc.Apps.ListByNeed(c.Context(), need.ID)
	if err != nil {
		nc.Logger.WithError(err).Warn("failed to load applicants for update notice")
		return
	}

	var userIDs []string
	for _, app := range apps {
		if app.Status == models.ApplicationPending || app.Status == models.ApplicationAccepted {
			userIDs = append(userIDs, app.ApplicantUserID)
		}
	}
	nc.Dispatcher.NeedUpdated(need, userIDs)
}
