package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Stable error codes returned in the response envelope. Clients key off these,
// never off the message text.
const (
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotRegistered        = "NOT_REGISTERED"
	CodeValidationError      = "VALIDATION_ERROR"
	CodePIIDetected          = "PII_DETECTED"
	CodeNeedNotFound         = "NEED_NOT_FOUND"
	CodeNotFound             = "NOT_FOUND"
	CodeDuplicateApplication = "DUPLICATE_APPLICATION"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeInternalError        = "INTERNAL_ERROR"
)

// ErrorResponse writes the uniform failure envelope.
func ErrorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidationResponse writes a VALIDATION_ERROR (or PII_DETECTED when the
// failure came from the PII filter) with the field-keyed detail map.
func ValidationResponse(c *fiber.Ctx, fields FieldErrors, piiDetected bool) error {
	code := CodeValidationError
	message := "One or more fields are invalid"
	if piiDetected {
		code = CodePIIDetected
		message = "Public fields must not contain contact information"
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
			"fields":  fields,
		},
	})
}

// FiberErrorHandler maps errors escaping the handlers onto the envelope, so
// framework-generated failures look like every other error.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	code := CodeInternalError
	switch status {
	case fiber.StatusMethodNotAllowed:
		code = CodeMethodNotAllowed
	case fiber.StatusNotFound:
		code = CodeNotFound
	}
	return ErrorResponse(c, status, code, err.Error())
}

// SuccessResponse builds the uniform success envelope.
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}
