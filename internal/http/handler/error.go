package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wklejka/internal/http/middleware"
	"wklejka/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "NAME_REQUIRED", "BOARD_NOT_FOUND")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// serviceError translates service sentinel errors into HTTP responses.
// Validation failures map to 400, unknown records to 404, anything else to 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
	case errors.Is(err, service.ErrTypeAndContentRequired):
		return writeError(c, fiber.StatusBadRequest, "TYPE_AND_CONTENT_REQUIRED", "type and content are required")
	case errors.Is(err, service.ErrInvalidImageData):
		return writeError(c, fiber.StatusBadRequest, "INVALID_IMAGE_DATA", "invalid image data")
	case errors.Is(err, service.ErrInvalidFileData):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_DATA", "invalid file data")
	case errors.Is(err, service.ErrDefaultBoard):
		return writeError(c, fiber.StatusBadRequest, "DEFAULT_BOARD", "cannot delete default board")
	case errors.Is(err, service.ErrBoardNotFound):
		return writeError(c, fiber.StatusNotFound, "BOARD_NOT_FOUND", "board not found")
	case errors.Is(err, service.ErrClipNotFound):
		return writeError(c, fiber.StatusNotFound, "CLIP_NOT_FOUND", "clip not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusUpgradeRequired:
			return writeError(c, status, "UPGRADE_REQUIRED", "websocket upgrade required")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
