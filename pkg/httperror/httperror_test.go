package httperror

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"bad request", BadRequest("c", "m", nil), fiber.StatusBadRequest},
		{"unauthorized", Unauthorized("c", "m", nil), fiber.StatusUnauthorized},
		{"forbidden", Forbidden("c", "m", nil), fiber.StatusForbidden},
		{"not found", NotFound("c", "m", nil), fiber.StatusNotFound},
		{"conflict", Conflict("c", "m", nil), fiber.StatusConflict},
		{"internal", InternalServerError("c", "m", nil), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Status)
		})
	}
}

func TestErrorsAs(t *testing.T) {
	var err error = NotFound("vendor.show.not_found", "Vendor not found", nil)

	var httpErr *Error
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "vendor.show.not_found", httpErr.Code)
	assert.Equal(t, "vendor.show.not_found: Vendor not found", err.Error())
}
