package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"teamup/middleware"
	"teamup/models"
	"teamup/repository"
	"teamup/utils"
)

// UpdateApplication drives the workflow state machine. The need's owner may
// accept or reject a pending application and toggle its read flag; the
// applicant may withdraw a pending one. All three target states are terminal.
func (ac *ApplicationController) UpdateApplication(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	id := utils.ParseUint(c.Params("id"))

	app, err := ac.Apps.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Application not found")
		}
		ac.Logger.WithError(err).Error("failed to fetch application")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch application")
	}

	need, err := ac.Needs.GetByID(c.Context(), app.TeamNeedID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		ac.Logger.WithError(err).Error("failed to fetch need for application")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch application")
	}

	isOwner := need != nil && utils.CanManageApplication(identity, need)
	isApplicant := app.ApplicantUserID == identity.UserID
	if !isOwner && !isApplicant {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Application not found")
	}

	var input struct {
		Status        *string `json:"status"`
		IsReadByOwner *bool   `json:"is_read_by_owner"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "Invalid request body")
	}

	statusChanged := false
	if input.Status != nil {
		target := *input.Status
		if !models.ValidApplicationStatus(target) || target == models.ApplicationPending {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "Invalid target status")
		}

		if target == models.ApplicationWithdrawn {
			if !isApplicant {
				return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Only the applicant may withdraw")
			}
		} else if !isOwner {
			return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Only the need's owner may decide an application")
		}

		if app.IsTerminal() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "Application has already been decided")
		}

		app.Status = target
		statusChanged = true
	}

	if input.IsReadByOwner != nil {
		if !isOwner {
			return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Only the need's owner may mark applications read")
		}
		app.IsReadByOwner = *input.IsReadByOwner
	}

	if err := ac.Apps.Save(c.Context(), app); err != nil {
		ac.Logger.WithError(err).Error("failed to update application")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to update application")
	}

	if statusChanged && need != nil &&
		(app.Status == models.ApplicationAccepted || app.Status == models.ApplicationRejected) {
		ac.Dispatcher.ApplicationDecided(need, app)
	}

	return c.JSON(utils.SuccessResponse(app))
}
