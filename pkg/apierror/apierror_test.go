package apierror_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medicare/clinicctl/pkg/apierror"
)

func TestDecodePrefersFieldError(t *testing.T) {
	body := []byte(`{"password": ["Password fields didn't match."], "error": "Registration failed"}`)

	err := apierror.Decode(http.StatusBadRequest, body)

	assert.Equal(t, apierror.KindValidation, err.Kind)
	assert.Equal(t, "Password fields didn't match.", err.Message)
	assert.Equal(t, "Password fields didn't match.", err.FieldError("password"))
}

func TestDecodeFallsBackToErrorField(t *testing.T) {
	body := []byte(`{"error": "user with this email already exists."}`)

	err := apierror.Decode(http.StatusBadRequest, body)

	assert.Equal(t, "user with this email already exists.", err.Message)
	assert.Empty(t, err.Fields)
}

func TestDecodeFallsBackToDetail(t *testing.T) {
	body := []byte(`{"detail": "Given token not valid for any token type"}`)

	err := apierror.Decode(http.StatusUnauthorized, body)

	assert.Equal(t, apierror.KindUnauthorized, err.Kind)
	assert.Equal(t, "Given token not valid for any token type", err.Message)
	assert.True(t, apierror.IsUnauthorized(err))
}

func TestDecodeUnparsableBody(t *testing.T) {
	err := apierror.Decode(http.StatusInternalServerError, []byte("<html>oops</html>"))

	assert.Equal(t, apierror.KindServer, err.Kind)
	assert.Equal(t, apierror.FallbackMessage, err.Message)
}

func TestDecodeKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   apierror.Kind
	}{
		{http.StatusBadRequest, apierror.KindValidation},
		{http.StatusUnauthorized, apierror.KindUnauthorized},
		{http.StatusForbidden, apierror.KindUnauthorized},
		{http.StatusNotFound, apierror.KindNotFound},
		{http.StatusBadGateway, apierror.KindServer},
	}

	for _, tt := range tests {
		err := apierror.Decode(tt.status, []byte(`{}`))
		assert.Equal(t, tt.kind, err.Kind, "status %d", tt.status)
	}
}

func TestTransportWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apierror.Transport(cause)

	assert.Equal(t, apierror.KindTransport, err.Kind)
	assert.Equal(t, "Network error. Please try again.", err.Message)
	assert.ErrorIs(t, err, cause)
}
