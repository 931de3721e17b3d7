package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/store"
	"github.com/mroussel/frais/internal/testutil"
)

func billsDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	signIn(t, app, domain.RoleEmployee)
	app.InitialRoute = RouteBills
	return NewTestDriver(t, app)
}

func TestBills_ListSortedNewestFirst(t *testing.T) {
	d := billsDriver(t, testApp(t))

	require.Equal(t, ViewBills, d.ActiveViewID())
	view := d.View()

	// Fixture dates span 2001..2004; newest renders first.
	posNewest := strings.Index(view, "4 Avr. 04")
	posOldest := strings.Index(view, "1 Janv. 01")
	require.GreaterOrEqual(t, posNewest, 0)
	require.GreaterOrEqual(t, posOldest, 0)
	assert.Less(t, posNewest, posOldest)
}

func TestBills_MalformedDateFallsBackToRaw(t *testing.T) {
	app := testApp(t)
	app.Fixtures = []domain.Bill{
		{ID: "b1", Name: "Taxi", Type: "Transports", Date: "not-a-date", Amount: 10, Status: domain.BillPending},
	}
	d := billsDriver(t, app)

	view := d.View()
	assert.Contains(t, view, "not-a-date")
	assert.Contains(t, view, "En attente")
}

func TestBills_StatusLabels(t *testing.T) {
	d := billsDriver(t, testApp(t))

	view := d.View()
	assert.Contains(t, view, "En attente")
	assert.Contains(t, view, "Accepté")
	assert.Contains(t, view, "Refused")
}

func TestBills_RemoteErrorRenderedVerbatim(t *testing.T) {
	for _, code := range []int{404, 500} {
		app := testApp(t)
		app.Fixtures = nil
		app.Store = testutil.FailingStore(&store.APIError{Code: code})
		d := billsDriver(t, app)

		view := d.View()
		assert.Contains(t, view, (&store.APIError{Code: code}).Error())
		assert.Contains(t, view, "réessayer")
	}
}

func TestBills_RetryAfterError(t *testing.T) {
	app := testApp(t)
	app.Fixtures = nil
	mock := testutil.FailingStore(&store.APIError{Code: 500})
	app.Store = mock
	d := billsDriver(t, app)

	require.Contains(t, d.View(), "Erreur 500")

	mock.ListFn = func(context.Context) ([]domain.Bill, error) {
		return testutil.SampleBills(), nil
	}
	d.PressKey('r')

	view := d.View()
	assert.NotContains(t, view, "Erreur 500")
	assert.Contains(t, view, "Vol Paris Londres")
}

func TestBills_EnterOpensReceiptModal(t *testing.T) {
	d := billsDriver(t, testApp(t))

	d.PressEnter()

	require.True(t, d.ModalShown())
	// Cursor starts on the newest bill, whose receipt URL must show.
	assert.Contains(t, d.View(), "https://test.storage.tld/justificatif-1.jpg")
}

func TestBills_ModalWithoutReceiptShowsPlaceholder(t *testing.T) {
	d := billsDriver(t, testApp(t))

	// "Déjeuner client" (2002) has no file; it sits third after sorting.
	d.PressDown()
	d.PressDown()
	d.PressEnter()

	require.True(t, d.ModalShown())
	assert.Contains(t, d.View(), "(aucun fichier)")
}

func TestBills_EscDismissesModal(t *testing.T) {
	d := billsDriver(t, testApp(t))

	d.PressEnter()
	require.True(t, d.ModalShown())

	d.PressEsc()
	assert.False(t, d.ModalShown())
}

func TestBills_NStartsNewBill(t *testing.T) {
	d := billsDriver(t, testApp(t))

	d.PressKey('n')

	assert.Equal(t, ViewNewBill, d.ActiveViewID())
	assert.Equal(t, RouteNewBill, d.CurrentPath())
}

func TestBills_RemoteListRefreshesCache(t *testing.T) {
	app := testApp(t)
	app.Fixtures = nil
	app.Store = testutil.NewMockStore(testutil.SampleBills())
	billsDriver(t, app)

	cached, err := app.Cache.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cached, 4)
}

func TestBills_EmptyList(t *testing.T) {
	app := testApp(t)
	app.Fixtures = nil
	d := billsDriver(t, app)

	assert.Contains(t, d.View(), "Aucune note de frais.")
}
