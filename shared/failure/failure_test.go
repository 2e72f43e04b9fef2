package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"turfbook/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad input")), wantCode: http.StatusBadRequest, wantMsg: "bad input"},
		{name: "bad request from string", err: failure.BadRequestFromString("date is required"), wantCode: http.StatusBadRequest, wantMsg: "date is required"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), wantCode: http.StatusUnauthorized, wantMsg: "token expired"},
		{name: "forbidden", err: failure.Forbidden("not your venue"), wantCode: http.StatusForbidden, wantMsg: "not your venue"},
		{name: "not found", err: failure.NotFound("booking not found"), wantCode: http.StatusNotFound, wantMsg: "booking not found"},
		{name: "conflict", err: failure.Conflict("slot already booked"), wantCode: http.StatusConflict, wantMsg: "slot already booked"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), wantCode: http.StatusInternalServerError, wantMsg: "boom"},
		{name: "predefined forbidden", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to confirm booking: %w", failure.NotFound("booking not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}
