package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"listingapi/internal/http/middleware"
	"listingapi/internal/logging"
	"listingapi/internal/model"
	"listingapi/internal/schema"
	"listingapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes the error envelope. message must be safe to show;
// internal error text never goes here.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeFieldErrors(c, status, code, message, nil)
}

// writeFieldErrors is writeError with per-field details for validation failures.
func writeFieldErrors(c *fiber.Ctx, status int, code, message string, fields []model.FieldError) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	})
}

// writeServiceError maps service and wizard errors onto the envelope.
// Anything unrecognised is logged and reported as INTERNAL_ERROR.
func writeServiceError(c *fiber.Ctx, err error) error {
	var unmet *service.UnmetRequirementsError
	switch {
	case errors.As(err, &unmet):
		return writeFieldErrors(c, fiber.StatusUnprocessableEntity, "NOT_PUBLISHABLE", "listing is not ready to publish", unmet.Errors)
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "listing not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrOwnerRequired):
		return writeError(c, fiber.StatusBadRequest, "OWNER_REQUIRED", "X-Owner-ID header is required")
	case errors.Is(err, service.ErrInvalidPricingMode):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PRICING_MODE", "pricing_mode must be flat or usage")
	case errors.Is(err, service.ErrNotEditable):
		return writeError(c, fiber.StatusConflict, "NOT_EDITABLE", "listing can no longer be edited")
	case errors.Is(err, context.DeadlineExceeded):
		return writeError(c, fiber.StatusGatewayTimeout, "TIMEOUT", "request timed out")
	}
	logging.Default().Error("http", "request_failed", err, map[string]any{
		"request_id": requestIDFromCtx(c),
		"method":     c.Method(),
		"path":       c.Path(),
	})
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// writeBodyError reports a body that failed decoding or schema checks.
func writeBodyError(c *fiber.Ctx, err error) error {
	var se *schema.Error
	switch {
	case errors.As(err, &se):
		return writeFieldErrors(c, fiber.StatusBadRequest, "INVALID_BODY", "request body does not match the listing schema", se.Errors)
	case errors.Is(err, schema.ErrBodyEmpty):
		return writeError(c, fiber.StatusBadRequest, "BODY_REQUIRED", "request body is required")
	default:
		return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "BODY_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "RATE_LIMITED", "too many requests")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
