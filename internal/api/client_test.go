package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicare/clinicctl/internal/api"
	"github.com/medicare/clinicctl/internal/model"
	"github.com/medicare/clinicctl/internal/tokenstore"
	"github.com/medicare/clinicctl/pkg/apierror"
	"github.com/medicare/clinicctl/pkg/logger"
)

func newClient(t *testing.T, baseURL string) (*api.Client, tokenstore.Store) {
	t.Helper()
	tokens := tokenstore.NewFile(filepath.Join(t.TempDir(), "tokens.json"))
	client := api.NewClient(api.Config{BaseURL: baseURL}, tokens, logger.NewLogger(nil))
	return client, tokens
}

func TestAuthenticatedRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]model.Appointment{})
	}))
	defer server.Close()

	client, tokens := newClient(t, server.URL)
	require.NoError(t, tokens.Save(model.TokenPair{Access: "the-access-token", Refresh: "r"}))

	_, err := client.ListAppointments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer the-access-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "/appointments/", gotPath)
}

func TestPublicEndpointsSendNoCredential(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]model.Service{})
	}))
	defer server.Close()

	client, tokens := newClient(t, server.URL)
	require.NoError(t, tokens.Save(model.TokenPair{Access: "a", Refresh: "r"}))

	_, err := client.ListServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUpdateUsesDetailPath(t *testing.T) {
	var gotMethod, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(model.Appointment{ID: "abc-123"})
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL)

	notes := "updated"
	_, err := client.UpdateAppointment(context.Background(), "abc-123", model.UpdateAppointmentRequest{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/appointments/abc-123/", gotPath)
}

func TestErrorResponseDecodesOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "appointment date cannot be in the past"}`))
	}))
	defer server.Close()

	client, _ := newClient(t, server.URL)

	_, err := client.CreateAppointment(context.Background(), model.CreateAppointmentRequest{
		Doctor: "d", Service: "s", Date: "2020-01-01", Time: "09:00",
	})

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
	assert.Equal(t, "appointment date cannot be in the past", apiErr.Message)
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	client, _ := newClient(t, "http://127.0.0.1:1")

	_, err := client.ListServices(context.Background())

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindTransport, apiErr.Kind)
}
