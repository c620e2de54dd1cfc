// Package rest shapes the JSON surface of the zones API: the response
// envelope, the error translation from rich errors to HTTP statuses,
// and the request id tagging middleware.
package rest

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// ErrorBody is the wire shape of a failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the wire shape of every response.
type Envelope struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	RequestID string     `json:"requestId,omitempty"`
}

// RequestID returns the id tagged onto this request.
func RequestID(ctx router.Context) string {
	if rid, ok := ctx.Locals(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// RequestIDMiddleware tags each request with an id, honoring one the
// client already sent, and echoes it on the response. The rest of the
// stack treats the value as opaque.
func RequestIDMiddleware() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			rid := ctx.GetString(RequestIDHeader, "")
			if rid == "" {
				rid = uuid.NewString()
			}

			ctx.Locals(requestIDKey, rid)
			ctx.SetHeader(RequestIDHeader, rid)

			return ctx.Next()
		}
	}
}

// OK writes a success envelope.
func OK(ctx router.Context, status int, data any) error {
	return ctx.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		RequestID: RequestID(ctx),
	})
}

// Fail translates an error into a status code and an error envelope.
// Inner packages never touch HTTP statuses; this is the only place
// the mapping lives.
func Fail(ctx router.Context, err error) error {
	status, body := errorBody(err)
	return ctx.JSON(status, Envelope{
		Success:   false,
		Error:     body,
		RequestID: RequestID(ctx),
	})
}

func errorBody(err error) (int, *ErrorBody) {
	if verr, ok := err.(validation.Errors); ok {
		return router.StatusBadRequest, &ErrorBody{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: verr,
		}
	}

	var rich *errors.Error
	if errors.As(err, &rich) {
		return categoryStatus(rich.Category), &ErrorBody{
			Code:    errorCode(rich),
			Message: rich.Message,
		}
	}

	// Unknown error: surface nothing about the internals.
	return router.StatusInternalServerError, &ErrorBody{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
	}
}

func categoryStatus(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return router.StatusUnauthorized
	case errors.CategoryAuthz:
		return router.StatusForbidden
	case errors.CategoryConflict:
		return router.StatusConflict
	case errors.CategoryValidation, errors.CategoryBadInput:
		return router.StatusBadRequest
	case errors.CategoryNotFound:
		return router.StatusNotFound
	case errors.CategoryRateLimit:
		return router.StatusTooManyRequests
	default:
		return router.StatusInternalServerError
	}
}

func errorCode(rich *errors.Error) string {
	if rich.TextCode != "" {
		return rich.TextCode
	}
	return string(rich.Category)
}
