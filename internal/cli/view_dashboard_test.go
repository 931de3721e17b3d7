package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/store"
	"github.com/mroussel/frais/internal/testutil"
)

func dashboardDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	signIn(t, app, domain.RoleAdministrator)
	app.InitialRoute = RouteDashboard
	return NewTestDriver(t, app)
}

func TestDashboard_GroupsBillsByStatus(t *testing.T) {
	d := dashboardDriver(t, testApp(t))

	require.Equal(t, ViewDashboard, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "En attente (1)")
	assert.Contains(t, view, "Accepté (1)")
	assert.Contains(t, view, "Refused (2)")
	assert.Contains(t, view, "Séminaire billed")
}

func TestDashboard_TabCyclesStatusColumns(t *testing.T) {
	d := dashboardDriver(t, testApp(t))

	v := d.appModel().view.(*dashboardView)
	assert.Equal(t, 0, v.focus)

	d.PressTab()
	assert.Equal(t, 1, v.focus)

	d.PressTab()
	d.PressTab()
	assert.Equal(t, 0, v.focus, "tab wraps around the three columns")
}

func TestDashboard_EnterOpensReceipt(t *testing.T) {
	d := dashboardDriver(t, testApp(t))

	// The pending column holds the 2004 bill and its receipt.
	d.PressEnter()
	require.True(t, d.ModalShown())
	assert.Contains(t, d.View(), "justificatif-1.jpg")
}

func TestDashboard_RemoteErrorRenderedVerbatim(t *testing.T) {
	app := testApp(t)
	app.Fixtures = nil
	app.Store = testutil.FailingStore(&store.APIError{Code: 500})
	d := dashboardDriver(t, app)

	assert.Contains(t, d.View(), "Erreur 500")
}

func TestDashboard_EmptyColumnsRender(t *testing.T) {
	app := testApp(t)
	app.Fixtures = []domain.Bill{}
	d := dashboardDriver(t, app)

	view := d.View()
	assert.Contains(t, view, "En attente (0)")
	assert.Contains(t, view, "aucune")
}
