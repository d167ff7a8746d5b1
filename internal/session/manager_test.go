package session_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicare/clinicctl/internal/api"
	"github.com/medicare/clinicctl/internal/clinictest"
	"github.com/medicare/clinicctl/internal/model"
	"github.com/medicare/clinicctl/internal/notify"
	"github.com/medicare/clinicctl/internal/session"
	"github.com/medicare/clinicctl/internal/tokenstore"
	"github.com/medicare/clinicctl/pkg/logger"
)

type fixture struct {
	server   *clinictest.Server
	tokens   tokenstore.Store
	notifier *notify.Recorder
	manager  *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := clinictest.New()
	t.Cleanup(server.Close)

	tokens := tokenstore.NewFile(filepath.Join(t.TempDir(), "tokens.json"))
	notifier := &notify.Recorder{}
	log := logger.NewLogger(nil)
	client := api.NewClient(api.Config{BaseURL: server.URL()}, tokens, log)

	return &fixture{
		server:   server,
		tokens:   tokens,
		notifier: notifier,
		manager:  session.NewManager(client, tokens, notifier, log),
	}
}

func TestLoginLogoutLifecycle(t *testing.T) {
	f := newFixture(t)
	f.server.AddAccount("a@x.com", "pw1", "")
	ctx := context.Background()

	assert.False(t, f.manager.IsAuthenticated())

	require.NoError(t, f.manager.Login(ctx, "a@x.com", "pw1"))
	assert.True(t, f.manager.IsAuthenticated())

	pair, err := f.tokens.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	user, ok := f.manager.Current()
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user.Email)
	// No server-side name: display name derives from the email local part.
	assert.Equal(t, "a", user.Name)

	f.manager.Logout()
	assert.False(t, f.manager.IsAuthenticated())

	pair, err = f.tokens.Load()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
	assert.Empty(t, pair.Refresh)
	assert.Contains(t, f.notifier.Successes, "Logged out successfully")
}

func TestLoginFailureKeepsSessionEmpty(t *testing.T) {
	f := newFixture(t)
	f.server.AddAccount("a@x.com", "pw1", "Alice")

	err := f.manager.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	assert.False(t, f.manager.IsAuthenticated())
	assert.Equal(t, "Login failed. Please check your credentials.", f.notifier.LastError())

	pair, loadErr := f.tokens.Load()
	require.NoError(t, loadErr)
	assert.True(t, pair.Empty())
}

func TestLoginKeepsServerSuppliedName(t *testing.T) {
	f := newFixture(t)
	f.server.AddAccount("alice@example.com", "secret123", "Alice Smith")

	require.NoError(t, f.manager.Login(context.Background(), "alice@example.com", "secret123"))

	user, _ := f.manager.Current()
	assert.Equal(t, "Alice Smith", user.Name)
}

func TestSignupNeverMutatesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	account, err := f.manager.Signup(ctx, "new@x.com", "password1", "New Patient")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", account.Email)
	assert.Equal(t, "patient", account.Role)

	assert.False(t, f.manager.IsAuthenticated())
	assert.Contains(t, f.notifier.Successes, "Registration successful! Please login.")

	pair, err := f.tokens.Load()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
}

func TestSignupSendsConfirmationAndRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Signup(context.Background(), "new@x.com", "password1", "")
	require.NoError(t, err)

	capture := f.server.LastCapture("POST", "/auth/register/")
	require.NotNil(t, capture)
	assert.Contains(t, string(capture.Body), `"password2":"password1"`)
	assert.Contains(t, string(capture.Body), `"role":"patient"`)
	assert.Contains(t, string(capture.Body), `"name":""`)
}

func TestSignupDuplicateSurfacesServerMessage(t *testing.T) {
	f := newFixture(t)
	f.server.AddAccount("taken@x.com", "pw1", "")

	_, err := f.manager.Signup(context.Background(), "taken@x.com", "password1", "")
	require.Error(t, err)

	assert.Equal(t, "user with this email already exists.", f.notifier.LastError())
	assert.False(t, f.manager.IsAuthenticated())
}

func TestRestoreWithValidToken(t *testing.T) {
	f := newFixture(t)
	acc := f.server.AddAccount("a@x.com", "pw1", "")

	require.NoError(t, f.tokens.Save(model.TokenPair{
		Access:  f.server.IssueToken(acc, time.Hour),
		Refresh: f.server.IssueToken(acc, 7*24*time.Hour),
	}))

	f.manager.Restore(context.Background())

	assert.True(t, f.manager.Ready())
	assert.True(t, f.manager.IsAuthenticated())

	user, _ := f.manager.Current()
	assert.Equal(t, "a", user.Name)
}

func TestRestoreWithExpiredTokenClearsPair(t *testing.T) {
	f := newFixture(t)
	acc := f.server.AddAccount("a@x.com", "pw1", "")

	require.NoError(t, f.tokens.Save(model.TokenPair{
		Access:  f.server.IssueToken(acc, -time.Hour),
		Refresh: f.server.IssueToken(acc, 7*24*time.Hour),
	}))

	f.manager.Restore(context.Background())

	assert.True(t, f.manager.Ready())
	assert.False(t, f.manager.IsAuthenticated())

	pair, err := f.tokens.Load()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
	assert.Empty(t, pair.Refresh)
}

func TestRestoreWithNoTokenMakesNoRequest(t *testing.T) {
	f := newFixture(t)

	f.manager.Restore(context.Background())

	assert.True(t, f.manager.Ready())
	assert.False(t, f.manager.IsAuthenticated())
	assert.Zero(t, f.server.Requests())
}

func TestLogoutWithoutActiveSession(t *testing.T) {
	f := newFixture(t)

	f.manager.Logout()

	assert.False(t, f.manager.IsAuthenticated())
	assert.Contains(t, f.notifier.Successes, "Logged out successfully")
}
