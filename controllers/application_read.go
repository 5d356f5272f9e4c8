package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"teamup/middleware"
	"teamup/models"
	"teamup/repository"
	"teamup/utils"
)

// GetApplication returns one application to the need's owner or to the
// applicant. Anyone else gets NOT_FOUND: applications are private, so their
// existence is not disclosed.
func (ac *ApplicationController) GetApplication(c *fiber.Ctx) error {
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

	// The need may have been deleted out from under the application; the
	// applicant keeps access to their own orphaned record.
	if need == nil {
		if app.ApplicantUserID != identity.UserID {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Application not found")
		}
	} else if !utils.CanViewApplication(identity, app, need) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Application not found")
	}

	return c.JSON(utils.SuccessResponse(app))
}

// ListNeedApplications returns every application on a need. Owner only.
func (ac *ApplicationController) ListNeedApplications(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	needID := utils.ParseUint(c.Params("id"))

	need, err := ac.Needs.GetByID(c.Context(), needID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNeedNotFound, "Need not found")
		}
		ac.Logger.WithError(err).Error("failed to fetch need")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch need")
	}

	if !utils.CanListNeedApplications(identity, need) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Only the owner may list applications")
	}

	apps, err := ac.Apps.ListByNeed(c.Context(), needID)
	if err != nil {
		ac.Logger.WithError(err).Error("failed to list applications")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch applications")
	}

	return c.JSON(utils.SuccessResponse(apps))
}

// MyApplications lists the caller's own applications, optionally filtered by
// status.
func (ac *ApplicationController) MyApplications(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	status := c.Query("status")
	if status != "" && !models.ValidApplicationStatus(status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidationError, "Unknown application status")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	apps, total, err := ac.Apps.ListByApplicant(c.Context(), identity.UserID, status, limit, offset)
	if err != nil {
		ac.Logger.WithError(err).Error("failed to list own applications")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch applications")
	}

	return c.JSON(utils.SuccessResponse(utils.PaginatedResponse{
		Data:   apps,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}))
}
