package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"teamup/middleware"
	"teamup/models"
	"teamup/utils"
)

// CreateNeed publishes a new recruiting post. Caller must be authenticated and
// hold a completed registration profile; the poster's display name and
// nickname are snapshotted onto the post.
func (nc *NeedController) CreateNeed(c *fiber.Ctx) error {
	profile := middleware.Profile(c)

	var input struct {
		Title        string   `json:"title"`
		ProjectTrack string   `json:"project_track"`
		ProjectStage string   `json:"project_stage"`
		Brief        string   `json:"brief"`
		RolesNeeded  []string `json:"roles_needed"`
		HaveRoles    []string `json:"have_roles"`
		OtherNeeds   string   `json:"other_needs"`
		ContactHint  string   `json:"contact_hint"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "Invalid request body")
	}

	fieldErrs, pii := utils.ValidateNeedForm(utils.NeedForm{
		Title:        input.Title,
		ProjectTrack: input.ProjectTrack,
		ProjectStage: input.ProjectStage,
		Brief:        input.Brief,
		RolesNeeded:  input.RolesNeeded,
		HaveRoles:    input.HaveRoles,
		OtherNeeds:   input.OtherNeeds,
		ContactHint:  input.ContactHint,
	}, false)
	if len(fieldErrs) > 0 {
		return utils.ValidationResponse(c, fieldErrs, pii)
	}

	flagged, matched := utils.CheckSensitiveContent(
		strings.Join([]string{input.Title, input.Brief, input.OtherNeeds}, "\n"))

	need := models.TeamNeed{
		OwnerUserID:   profile.UserID,
		OwnerEmail:    profile.Email,
		OwnerName:     profile.DisplayName,
		OwnerNickname: profile.Nickname,
		Title:         input.Title,
		ProjectTrack:  input.ProjectTrack,
		ProjectStage:  input.ProjectStage,
		Brief:         input.Brief,
		RolesNeeded:   input.RolesNeeded,
		HaveRoles:     input.HaveRoles,
		OtherNeeds:    input.OtherNeeds,
		ContactHint:   input.ContactHint,
		IsFlagged:     flagged,
		FlagReason:    utils.FlagReason(matched),
		IsOpen:        true,
		IsHidden:      false,
	}

	if err := nc.Needs.Create(c.Context(), &need); err != nil {
		nc.Logger.WithError(err).Error("failed to create need")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to create need")
	}

	// Best-effort confirmation; the post is created regardless.
	nc.Dispatcher.NeedCreated(&need)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(need))
}
