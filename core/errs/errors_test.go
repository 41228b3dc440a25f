package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"material-manager/core/errs"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	nf := errs.NotFound("curso", "abc")
	assert.True(t, errors.Is(nf, errs.ErrNotFound))
	assert.Equal(t, `curso "abc" not found`, nf.Error())

	wrapped := fmt.Errorf("loading: %w", nf)
	assert.True(t, errors.Is(wrapped, errs.ErrNotFound))

	lookup := &errs.ExternalLookupError{Source: "woocommerce", Term: "lapiz", Err: errors.New("timeout")}
	assert.True(t, errors.Is(lookup, errs.ErrExternalLookup))
	assert.Contains(t, lookup.Error(), "timeout")

	assert.True(t, errors.Is(errs.Invalid("nombre", "required"), errs.ErrInvalidInput))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Nil", nil, http.StatusOK},
		{"NotFound", errs.NotFound("material", "1"), http.StatusNotFound},
		{"NoVersion", errs.ErrNoVersion, http.StatusConflict},
		{"Conflict", fmt.Errorf("save: %w", errs.ErrConflict), http.StatusConflict},
		{"NothingToApprove", errs.ErrNothingToApprove, http.StatusUnprocessableEntity},
		{"Invalid", errs.Invalid("tipo", "unknown"), http.StatusUnprocessableEntity},
		{"Unavailable", fmt.Errorf("%w: no bucket", errs.ErrUnavailable), http.StatusServiceUnavailable},
		{"Other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.StatusCode(tt.err))
		})
	}
}
