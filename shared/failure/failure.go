package failure

import (
	"errors"
	"net/http"
)

// Failure carries a client-facing message together with the HTTP status it maps to.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func withCode(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest converts err into a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return withCode(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return withCode(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return withCode(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return withCode(http.StatusForbidden, msg)
}

// NotFound is returned when a venue, turf, booking or user does not exist.
func NotFound(msg string) error {
	return withCode(http.StatusNotFound, msg)
}

// Conflict covers overlapping bookings and status transitions that are no longer valid.
func Conflict(msg string) error {
	return withCode(http.StatusConflict, msg)
}

// InternalError converts err into a 500. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return withCode(http.StatusInternalServerError, err.Error())
}

// GetCode returns the status carried by err, or 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
