package session

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrLoginRequired is returned by RequireAuthenticated when there is no
	// session.
	ErrLoginRequired = errors.New("you must be logged in to continue")
	// ErrAlreadyAuthenticated is returned by RequireAnonymous when there is a
	// session.
	ErrAlreadyAuthenticated = errors.New("you are already logged in")
)

// RequireAuthenticated guards views that only make sense with a session. If
// there is none, the user is redirected to the login view and
// ErrLoginRequired is returned.
func (m *Manager) RequireAuthenticated(ctx context.Context) error {
	if m.IsAuthenticated() {
		return nil
	}
	m.navigator.Redirect(ctx, ViewLogin)
	return ErrLoginRequired
}

// RequireAnonymous guards views, like the landing and login views, that only
// make sense without a session. If there is one, the user is redirected to the
// dashboard and ErrAlreadyAuthenticated is returned.
func (m *Manager) RequireAnonymous(ctx context.Context) error {
	if !m.IsAuthenticated() {
		return nil
	}
	m.navigator.Redirect(ctx, ViewDashboard)
	return ErrAlreadyAuthenticated
}
