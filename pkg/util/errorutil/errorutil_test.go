package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{name: "domain error passes through", err: NewValidationError("bad", nil), code: "VALIDATION_FAILED", status: http.StatusBadRequest},
		{name: "wrapped domain error", err: fmt.Errorf("ctx: %w", NewUnauthorized("no")), code: "UNAUTHORIZED", status: http.StatusUnauthorized},
		{name: "store unavailable", err: NewStoreUnavailable(errors.New("dial")), code: "STORE_UNAVAILABLE", status: http.StatusServiceUnavailable},
		{name: "no rows", err: pgx.ErrNoRows, code: "NOT_FOUND", status: http.StatusNotFound},
		{name: "unknown error", err: errors.New("boom"), code: "INTERNAL_ERROR", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewStoreUnavailable(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "issue store unavailable: dial tcp: refused", err.Error())
}
