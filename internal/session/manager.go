package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Parthg59/expense-tracker/internal/core"
	"github.com/Parthg59/expense-tracker/internal/ledger"
)

// Manager runs the login and logout flows against the session state and
// the ledger store. Login authenticates first and only then touches
// state, so a failed attempt leaves nothing behind. Logout resets the
// ledger: the data lives only as long as the session.
type Manager struct {
	auth   Authenticator
	state  *State
	store  ledger.Store
	seeder *Seeder
}

// NewManager wires the login flow. seeder may be nil to disable sample
// data (remote auth mode).
func NewManager(auth Authenticator, state *State, store ledger.Store, seeder *Seeder) *Manager {
	return &Manager{
		auth:   auth,
		state:  state,
		store:  store,
		seeder: seeder,
	}
}

func (m *Manager) Login(ctx context.Context, username, password string) (core.User, error) {
	user, err := m.auth.Authenticate(ctx, username, password)
	if err != nil {
		return core.User{}, err
	}

	m.state.Login(user)

	if m.seeder != nil {
		if err := m.seeder.Seed(ctx); err != nil {
			// The session is valid even if seeding fails; the user just
			// starts from an empty ledger.
			slog.WarnContext(ctx, "Sample data seeding failed",
				"component", "session",
				"username", user.Username,
				"error", err)
		}
	}

	slog.InfoContext(ctx, "User logged in",
		"component", "session",
		"username", user.Username)
	return user, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	user, ok := m.state.CurrentUser()
	m.state.Logout()

	if err := m.store.Reset(ctx); err != nil {
		return fmt.Errorf("logout: reset ledger: %w", err)
	}

	if ok {
		slog.InfoContext(ctx, "User logged out",
			"component", "session",
			"username", user.Username)
	}
	return nil
}

// CurrentUser exposes the session state to handlers.
func (m *Manager) CurrentUser() (core.User, bool) {
	return m.state.CurrentUser()
}
