// Package apperrors carries typed request errors from services to handlers.
package apperrors

import "github.com/gofiber/fiber/v2"

type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports a missing or malformed input field.
func Validation(message string) *Error {
	return &Error{Code: fiber.StatusBadRequest, Message: message}
}

// Conflict reports a write that collides with an existing record.
func Conflict(message string) *Error {
	return &Error{Code: fiber.StatusBadRequest, Message: message}
}

// Unauthorized reports a request that needs an authenticated user.
func Unauthorized(message string) *Error {
	return &Error{Code: fiber.StatusUnauthorized, Message: message}
}

// NotFound reports an unknown resource id.
func NotFound(message string) *Error {
	return &Error{Code: fiber.StatusNotFound, Message: message}
}
