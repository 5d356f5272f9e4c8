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

// sanitizeNeed strips the fields reserved for the owner and accepted
// applicants from a public view.
func sanitizeNeed(need models.TeamNeed) models.TeamNeed {
	need.ContactHint = ""
	need.Applications = nil
	return need
}

// ListNeeds is the public listing with filters, search, sorting, and
// pagination. Hidden needs never appear here.
func (nc *NeedController) ListNeeds(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	filter := repository.NeedFilter{
		Track:  c.Query("track"),
		Stage:  c.Query("stage"),
		Role:   c.Query("roles"),
		Search: c.Query("search"),
		Sort:   c.Query("sort", "latest"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("isOpen"); v != "" {
		isOpen := v == "true"
		filter.IsOpen = &isOpen
	}

	needs, total, err := nc.Needs.List(c.Context(), filter)
	if err != nil {
		nc.Logger.WithError(err).Error("failed to list needs")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch needs")
	}

	for i := range needs {
		needs[i] = sanitizeNeed(needs[i])
	}

	return c.JSON(utils.SuccessResponse(utils.PaginatedResponse{
		Data:   needs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}))
}

// GetNeed returns one need. The owner additionally sees its applications and
// the contact hint; an accepted applicant sees the contact hint.
func (nc *NeedController) GetNeed(c *fiber.Ctx) error {
	id := utils.ParseUint(c.Params("id"))
	identity := middleware.Identity(c)

	need, err := nc.Needs.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNeedNotFound, "Need not found")
		}
		nc.Logger.WithError(err).Error("failed to fetch need")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch need")
	}

	isOwner := identity != nil && utils.CanEditNeed(identity, need)

	if need.IsHidden && !isOwner && (identity == nil || !utils.IsAdmin(identity)) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNeedNotFound, "Need not found")
	}

	if isOwner {
		full, err := nc.Needs.GetWithApplications(c.Context(), id)
		if err != nil {
			nc.Logger.WithError(err).Error("failed to fetch need applications")
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch need")
		}
		return c.JSON(utils.SuccessResponse(full))
	}

	// Accepted applicants keep access to the contact hint.
	if identity != nil {
		app, err := nc.Apps.GetByNeedAndApplicant(c.Context(), id, identity.UserID)
		if err == nil && app.Status == models.ApplicationAccepted {
			view := *need
			view.Applications = nil
			return c.JSON(utils.SuccessResponse(view))
		}
	}

	return c.JSON(utils.SuccessResponse(sanitizeNeed(*need)))
}

// MyNeeds lists the caller's own posts, closed and hidden ones included on
// request.
func (nc *NeedController) MyNeeds(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	filter := repository.NeedFilter{
		OwnerUserID:   identity.UserID,
		IncludeHidden: c.Query("includeHidden") == "true",
		Sort:          "latest",
		Limit:         limit,
		Offset:        offset,
	}
	if c.Query("includeClosed") != "true" {
		filter.IsOpen = utils.Pointer(true)
	}

	needs, total, err := nc.Needs.List(c.Context(), filter)
	if err != nil {
		nc.Logger.WithError(err).Error("failed to list own needs")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch needs")
	}

	return c.JSON(utils.SuccessResponse(utils.PaginatedResponse{
		Data:   needs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}))
}
