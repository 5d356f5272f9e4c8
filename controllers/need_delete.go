package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"teamup/middleware"
	"teamup/repository"
	"teamup/utils"
)

// DeleteNeed hard-deletes a post. Owner or admin only. Applications that
// reference the need are left in place; applicants keep access to their own
// records.
func (nc *NeedController) DeleteNeed(c *fiber.Ctx) error {
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

	if !utils.CanDeleteNeed(identity, need) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Only the owner or an admin may delete this need")
	}

	if err := nc.Needs.Delete(c.Context(), id); err != nil {
		nc.Logger.WithError(err).Error("failed to delete need")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to delete need")
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": true}))
}

// RecordView bumps the view counter. Public, rate-limited per IP; the
// increment itself is atomic in SQL.
func (nc *NeedController) RecordView(c *fiber.Ctx) error {
	id := utils.ParseUint(c.Params("id"))

	if err := nc.Needs.IncrementViewCount(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNeedNotFound, "Need not found")
		}
		nc.Logger.WithError(err).Error("failed to increment view count")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to record view")
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"recorded": true}))
}
