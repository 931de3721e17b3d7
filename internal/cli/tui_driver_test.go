package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/repository"
	"github.com/mroussel/frais/internal/session"
	"github.com/mroussel/frais/internal/teatest"
	"github.com/mroussel/frais/internal/testutil"
)

// TestDriver wraps teatest.Driver with frais-specific inspection methods.
// It exposes the appModel internals (active view, router state, modal)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App. It constructs the
// appModel, sets terminal size, and drains Init() (which loads the first
// view's data synchronously).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the rendered view.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	if m.view == nil {
		return ViewID(-1)
	}
	return m.view.ID()
}

// CurrentPath returns the router's active hash path.
func (d *TestDriver) CurrentPath() string {
	return d.appModel().state.Router.CurrentPath()
}

// ModalShown reports whether the receipt overlay is open.
func (d *TestDriver) ModalShown() bool {
	return d.appModel().modal.Shown()
}

// IsQuitting reports whether the program is terminating.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// testApp builds an App over an in-memory database with the sample bill
// fixtures and no remote store.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &App{
		Sessions: session.NewSessions(repository.NewSQLiteSessionRepo(database)),
		Cache:    repository.NewSQLiteBillCacheRepo(database),
		Fixtures: testutil.SampleBills(),
	}
}

// signIn persists a session directly, bypassing the login view.
func signIn(t *testing.T, app *App, role domain.UserRole) {
	t.Helper()
	err := app.Sessions.SignIn(context.Background(), role, "employee@test.tld", "opaque-token")
	require.NoError(t, err)
}
