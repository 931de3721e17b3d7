package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/store"
	"github.com/mroussel/frais/internal/testutil"
)

func newBillViewForTest(t *testing.T, app *App) *newBillView {
	t.Helper()
	state := &SharedState{App: app, Modal: newReceiptModal()}
	state.Router = newRouter(state)
	return newNewBillView(state)
}

// writeTempReceipt creates a real file so the upload path can open it.
func writeTempReceipt(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0o644))
	return path
}

// runBatch executes a Cmd and flattens any batch into its member messages.
func runBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		if c != nil {
			msgs = append(msgs, c())
		}
	}
	return msgs
}

func TestNewBill_RejectsDisallowedExtension(t *testing.T) {
	app := testApp(t)
	mock := testutil.NewMockStore(nil)
	app.Store = mock
	v := newBillViewForTest(t, app)

	for _, name := range []string{"facture.pdf", "scan.gif", "notes.txt", "archive.jpg.zip"} {
		cmd := v.handleChangeFile(name)
		assert.Nil(t, cmd, name)
		assert.True(t, v.fileErrVisible, name)
	}
	assert.Zero(t, mock.UploadCalls)
}

func TestNewBill_AcceptsAllowedExtensionsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"facture.jpg", "facture.JPG", "scan.jpeg", "photo.PnG"} {
		app := testApp(t)
		mock := testutil.NewMockStore(nil)
		app.Store = mock
		v := newBillViewForTest(t, app)
		v.fileErrVisible = true // left over from a previous bad pick

		path := writeTempReceipt(t, name)
		cmd := v.handleChangeFile(path)
		require.NotNil(t, cmd, name)
		assert.False(t, v.fileErrVisible, name)

		v.Update(cmd())
		assert.Equal(t, 1, mock.UploadCalls, name)
		assert.Equal(t, "mock-bill-id", v.billID, name)
		assert.Equal(t, stageReady, v.stage, name)
	}
}

func TestNewBill_UploadFailureKeepsDraftRetryable(t *testing.T) {
	app := testApp(t)
	mock := testutil.NewMockStore(nil)
	mock.UploadFn = func(context.Context, string, io.Reader) (store.Attachment, error) {
		return store.Attachment{}, errors.New("upload rejected")
	}
	app.Store = mock
	v := newBillViewForTest(t, app)
	v.stage = stageFile

	path := writeTempReceipt(t, "facture.jpg")
	cmd := v.handleChangeFile(path)
	require.NotNil(t, cmd)
	v.Update(cmd())

	// The file fields stay unset and the stage stays put for a retry.
	assert.Empty(t, v.billID)
	assert.Empty(t, v.fileURL)
	assert.Equal(t, stageFile, v.stage)

	mock.UploadFn = nil
	cmd = v.handleChangeFile(path)
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, 2, mock.UploadCalls)
	assert.Equal(t, "mock-bill-id", v.billID)
	assert.Equal(t, stageReady, v.stage)
}

func TestNewBill_SanitizeFileName(t *testing.T) {
	assert.Equal(t, "facture.jpg", sanitizeFileName("C:\\fakepath\\facture.jpg"))
	assert.Equal(t, "facture.jpg", sanitizeFileName("/home/user/facture.jpg"))
	assert.Equal(t, "facture.jpg", sanitizeFileName("facture.jpg"))
}

func TestNewBill_SubmitNavigatesEvenWhenPersistFails(t *testing.T) {
	app := testApp(t)
	signIn(t, app, domain.RoleEmployee)
	mock := testutil.NewMockStore(nil)
	mock.CreateFn = func(context.Context, domain.Bill) (domain.Bill, error) {
		return domain.Bill{}, &store.APIError{Code: 500}
	}
	app.Store = mock
	v := newBillViewForTest(t, app)
	v.fields.name = "Taxi aéroport"
	v.fields.date = "2024-03-01"
	v.fields.amount = "42.50"

	msgs := runBatch(t, v.handleSubmit())

	assert.Equal(t, 1, mock.CreateCalls)
	var navigated bool
	for _, msg := range msgs {
		if nav, ok := msg.(navigateMsg); ok {
			navigated = true
			assert.Equal(t, RouteBills, nav.path)
		}
	}
	assert.True(t, navigated, "submit must navigate regardless of the persist outcome")
}

func TestNewBill_SubmitCreatesWithoutAttachmentKey(t *testing.T) {
	app := testApp(t)
	signIn(t, app, domain.RoleEmployee)
	mock := testutil.NewMockStore(nil)
	app.Store = mock
	v := newBillViewForTest(t, app)
	v.fields.name = "Hôtel"
	v.fields.date = "2024-02-10"
	v.fields.amount = "120"

	runBatch(t, v.handleSubmit())

	assert.Equal(t, 1, mock.CreateCalls)
	assert.Zero(t, mock.UpdateCalls)
	assert.Equal(t, "employee@test.tld", mock.LastCreated.Email)
	assert.Equal(t, domain.BillPending, mock.LastCreated.Status)
}

func TestNewBill_SubmitUpdatesWhenAttachmentAllocatedKey(t *testing.T) {
	app := testApp(t)
	signIn(t, app, domain.RoleEmployee)
	mock := testutil.NewMockStore(nil)
	app.Store = mock
	v := newBillViewForTest(t, app)
	v.billID = "allocated-by-upload"
	v.fileURL = "https://test.storage.tld/facture.jpg"
	v.fileName = "facture.jpg"
	v.fields.name = "Dîner équipe"
	v.fields.date = "2024-02-12"
	v.fields.amount = "230"

	runBatch(t, v.handleSubmit())

	assert.Equal(t, 1, mock.UpdateCalls)
	assert.Zero(t, mock.CreateCalls)
	assert.Equal(t, "allocated-by-upload", mock.LastUpdated.ID)
	assert.Equal(t, "facture.jpg", mock.LastUpdated.FileName)
}

func TestNewBill_PctDefaultsWhenBlankOrInvalid(t *testing.T) {
	app := testApp(t)
	signIn(t, app, domain.RoleEmployee)
	v := newBillViewForTest(t, app)
	v.fields.pct = "not-a-number"

	bill := v.buildBill()
	assert.Equal(t, domain.DefaultPct, bill.Pct)

	v.fields.pct = ""
	assert.Equal(t, domain.DefaultPct, v.buildBill().Pct)

	v.fields.pct = "10"
	assert.Equal(t, 10, v.buildBill().Pct)
}

func TestNewBill_SubmitEchoesIntoCache(t *testing.T) {
	app := testApp(t)
	signIn(t, app, domain.RoleEmployee)
	app.Store = testutil.NewMockStore(nil)
	v := newBillViewForTest(t, app)
	v.fields.name = "Fournitures"
	v.fields.date = "2024-04-01"
	v.fields.amount = "18"

	runBatch(t, v.handleSubmit())

	cached, err := app.Cache.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "Fournitures", cached[0].Name)
	assert.NotEmpty(t, cached[0].ID, "the local echo carries a transient id")
}

func TestNewBill_EscReturnsToBills(t *testing.T) {
	app := testApp(t)
	signIn(t, app, domain.RoleEmployee)
	v := newBillViewForTest(t, app)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	nav, ok := cmd().(navigateMsg)
	require.True(t, ok)
	assert.Equal(t, RouteBills, nav.path)
}
