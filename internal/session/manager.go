// Package session owns the authenticated identity: one long-lived
// manager holds it in memory, derived from the bearer credential pair
// persisted in the token store.
package session

import (
	"context"
	"errors"

	"github.com/medicare/clinicctl/internal/api"
	"github.com/medicare/clinicctl/internal/model"
	"github.com/medicare/clinicctl/internal/notify"
	"github.com/medicare/clinicctl/internal/tokenstore"
	"github.com/medicare/clinicctl/pkg/apierror"
	"github.com/medicare/clinicctl/pkg/logger"
)

// ErrNotAuthenticated is returned by callers that require a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Manager is the session store. Identity exists in memory if and only
// if the last startup check or login succeeded; any failed identity
// fetch clears both stored tokens along with it.
type Manager struct {
	api    *api.Client
	tokens tokenstore.Store
	notify notify.Notifier
	log    *logger.Logger

	user  *model.User
	ready bool
}

func NewManager(client *api.Client, tokens tokenstore.Store, notifier notify.Notifier, log *logger.Logger) *Manager {
	return &Manager{
		api:    client,
		tokens: tokens,
		notify: notifier,
		log:    log,
	}
}

// Restore checks for an existing session on startup. With no stored
// access token it does nothing; with one it fetches the current user
// and populates the identity, or on any failure deletes both tokens
// and leaves the identity empty. It always finishes the initial
// loading phase, whatever the outcome.
func (m *Manager) Restore(ctx context.Context) {
	defer func() { m.ready = true }()

	pair, err := m.tokens.Load()
	if err != nil {
		m.log.Error(err, "failed to load stored credentials")
		return
	}
	if pair.Empty() {
		return
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Debug("session check failed", "error", err.Error())
		if err := m.tokens.Clear(); err != nil {
			m.log.Error(err, "failed to clear stale credentials")
		}
		return
	}

	m.user = withDisplayName(user)
}

// Login exchanges credentials for a token pair, persists both tokens,
// then resolves the identity. Failures surface as a notice and are
// re-raised so the caller can settle its own pending state.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	pair, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.notify.Error("Login failed. Please check your credentials.")
		return err
	}

	if err := m.tokens.Save(pair); err != nil {
		m.notify.Error("Login failed. Please check your credentials.")
		return err
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.notify.Error("Login failed. Please check your credentials.")
		return err
	}

	m.user = withDisplayName(user)
	m.notify.Success("Login successful!")
	return nil
}

// Signup registers a patient account. It reports the outcome but never
// mutates the session identity; the caller is expected to log in
// afterwards.
func (m *Manager) Signup(ctx context.Context, email, password, name string) (*model.RegisteredAccount, error) {
	req := model.RegisterRequest{
		Email:     email,
		Password:  password,
		Password2: password,
		Name:      name,
		Role:      model.DefaultRole,
	}

	account, err := m.api.Register(ctx, req)
	if err != nil {
		m.notify.Error(signupMessage(err))
		return nil, err
	}

	m.notify.Success("Registration successful! Please login.")
	return account, nil
}

// Logout deletes both stored tokens and clears the identity. It always
// succeeds, even when no session was active.
func (m *Manager) Logout() {
	if err := m.tokens.Clear(); err != nil {
		m.log.Error(err, "failed to delete stored credentials")
	}
	m.user = nil
	m.notify.Success("Logged out successfully")
}

// IsAuthenticated reports whether an identity is held.
func (m *Manager) IsAuthenticated() bool {
	return m.user != nil
}

// Current returns a copy of the session identity; ok is false when
// unauthenticated.
func (m *Manager) Current() (model.User, bool) {
	if m.user == nil {
		return model.User{}, false
	}
	return *m.user, true
}

// Ready reports whether the startup session check has finished.
func (m *Manager) Ready() bool {
	return m.ready
}

// signupMessage picks the most specific message the failure carries: a
// field-level error or generic error from the response body, already
// selected by the error decoder, with fixed strings for network
// failures and messageless rejections.
func signupMessage(err error) string {
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		return "Registration failed. Please try again."
	}
	if apiErr.Kind == apierror.KindTransport {
		return apiErr.Message
	}
	if apiErr.Message == apierror.FallbackMessage {
		return "Registration failed. Please try again."
	}
	return apiErr.Message
}

func withDisplayName(user *model.User) *model.User {
	u := *user
	u.Name = u.DisplayName()
	return &u
}
