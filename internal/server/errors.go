package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/schemas"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unknownKey *profile.UnknownKeyError
		invalid    *profile.ValidationError
		schemaErr  *schemas.ValidationError
	)
	switch {
	case errors.As(err, &unknownKey), errors.As(err, &invalid), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}
