package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"teamup/middleware"
	"teamup/models"
	"teamup/repository"
	"teamup/utils"
)

// CreateApplication submits a bid to join an open, visible need. The applicant
// must be registered and must not be the need's owner. Notifications to both
// sides are fire-and-forget: their failure never surfaces here and never rolls
// the application back.
func (ac *ApplicationController) CreateApplication(c *fiber.Ctx) error {
	profile := middleware.Profile(c)

	var input struct {
		TeamNeedID      uint     `json:"team_need_id" validate:"required"`
		Message         string   `json:"message"`
		ContactForOwner string   `json:"contact_for_owner"`
		Roles           []string `json:"roles"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "Invalid request body")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, err.Error())
	}

	need, err := ac.Needs.GetByID(c.Context(), input.TeamNeedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNeedNotFound, "Need not found")
		}
		ac.Logger.WithError(err).Error("failed to fetch need")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch need")
	}

	// Hidden posts are unreachable even via direct link.
	if need.IsHidden {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNeedNotFound, "Need not found")
	}
	if !need.IsOpen {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "This need is closed for applications")
	}
	if need.OwnerUserID == profile.UserID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "You cannot apply to your own need")
	}

	fieldErrs, pii := utils.ValidateApplicationForm(utils.ApplicationForm{
		Message:         input.Message,
		ContactForOwner: input.ContactForOwner,
		Roles:           input.Roles,
	})
	if len(fieldErrs) > 0 {
		return utils.ValidationResponse(c, fieldErrs, pii)
	}

	active, err := ac.Apps.HasActiveApplication(c.Context(), need.ID, profile.UserID)
	if err != nil {
		ac.Logger.WithError(err).Error("failed to check for duplicate application")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to create application")
	}
	if active {
		return utils.ErrorResponse(c, fiber.StatusConflict, utils.CodeDuplicateApplication, "You already applied to this need")
	}

	app := models.TeamApplication{
		TeamNeedID:      need.ID,
		ApplicantUserID: profile.UserID,
		ApplicantEmail:  profile.Email,
		ApplicantName:   profile.DisplayName,
		Message:         input.Message,
		ContactForOwner: input.ContactForOwner,
		Roles:           input.Roles,
		Status:          models.ApplicationPending,
		IsReadByOwner:   false,
	}

	if err := ac.Apps.Create(c.Context(), &app); err != nil {
		ac.Logger.WithError(err).Error("failed to create application")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to create application")
	}

	// The count is a trust signal, not part of the creation contract.
	if err := ac.Needs.IncrementApplicationCount(c.Context(), need.ID); err != nil {
		ac.Logger.WithError(err).WithField("need_id", need.ID).Warn("failed to bump application count")
	}

	ac.Dispatcher.ApplicationReceived(need, &app)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(app))
}
