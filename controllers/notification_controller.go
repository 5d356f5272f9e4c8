package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamup/middleware"
	"teamup/repository"
	"teamup/utils"
)

// NotificationController lets recipients read and manage their in-app
// notifications. Rows are written by the dispatcher, never through here.
type NotificationController struct {
	Notifications repository.NotificationRepository
	Logger        *logrus.Entry
}

func NewNotificationController(notifications repository.NotificationRepository, logger *logrus.Entry) *NotificationController {
	return &NotificationController{
		Notifications: notifications,
		Logger:        logger,
	}
}

// ListNotifications returns the caller's notifications, newest first.
func (ntc *NotificationController) ListNotifications(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	unreadOnly := c.Query("unreadOnly") == "true"

	items, total, err := ntc.Notifications.ListByUser(c.Context(), identity.UserID, unreadOnly, limit, offset)
	if err != nil {
		ntc.Logger.WithError(err).Error("failed to list notifications")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch notifications")
	}

	return c.JSON(utils.SuccessResponse(utils.PaginatedResponse{
		Data:   items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}))
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (ntc *NotificationController) MarkNotificationRead(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	id := utils.ParseUint(c.Params("id"))

	n, err := ntc.Notifications.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Notification not found")
		}
		ntc.Logger.WithError(err).Error("failed to fetch notification")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch notification")
	}
	if n.UserID != identity.UserID {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Notification not found")
	}

	if err := ntc.Notifications.MarkRead(c.Context(), id); err != nil {
		ntc.Logger.WithError(err).Error("failed to mark notification read")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to update notification")
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"read": true}))
}

// MarkAllNotificationsRead flags every unread notification of the caller.
func (ntc *NotificationController) MarkAllNotificationsRead(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	if err := ntc.Notifications.MarkAllRead(c.Context(), identity.UserID); err != nil {
		ntc.Logger.WithError(err).Error("failed to mark notifications read")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to update notifications")
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"read": true}))
}

// DeleteNotification removes one of the caller's notifications.
func (ntc *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	id := utils.ParseUint(c.Params("id"))

	n, err := ntc.Notifications.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Notification not found")
		}
		ntc.Logger.WithError(err).Error("failed to fetch notification")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to fetch notification")
	}
	if n.UserID != identity.UserID {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Notification not found")
	}

	if err := ntc.Notifications.Delete(c.Context(), id); err != nil {
		ntc.Logger.WithError(err).Error("failed to delete notification")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeDatabaseError, "Failed to delete notification")
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": true}))
}
