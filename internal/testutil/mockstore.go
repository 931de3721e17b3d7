package testutil

import (
	"context"
	"io"

	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/store"
)

// MockStore implements store.Store with injectable behavior per operation.
// The zero value succeeds with empty results; set the Fn fields to override.
// Call counters let tests assert how often each operation ran.
type MockStore struct {
	ListFn   func(ctx context.Context) ([]domain.Bill, error)
	CreateFn func(ctx context.Context, bill domain.Bill) (domain.Bill, error)
	UpdateFn func(ctx context.Context, bill domain.Bill) (domain.Bill, error)
	UploadFn func(ctx context.Context, fileName string, content io.Reader) (store.Attachment, error)
	LoginFn  func(ctx context.Context, email, password string) (store.Credentials, error)

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	UploadCalls int

	// LastCreated / LastUpdated capture the most recent payloads.
	LastCreated domain.Bill
	LastUpdated domain.Bill
}

var _ store.Store = (*MockStore)(nil)

// NewMockStore returns a MockStore whose List yields the given bills.
func NewMockStore(bills []domain.Bill) *MockStore {
	return &MockStore{
		ListFn: func(context.Context) ([]domain.Bill, error) {
			return bills, nil
		},
	}
}

// FailingStore returns a MockStore whose List rejects with err.
func FailingStore(err error) *MockStore {
	return &MockStore{
		ListFn: func(context.Context) ([]domain.Bill, error) {
			return nil, err
		},
	}
}

func (m *MockStore) Bills() store.BillsResource { return (*mockBills)(m) }

func (m *MockStore) Login(ctx context.Context, email, password string) (store.Credentials, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return store.Credentials{Token: "mock-token"}, nil
}

type mockBills MockStore

func (m *mockBills) List(ctx context.Context) ([]domain.Bill, error) {
	m.ListCalls++
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *mockBills) Create(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	m.CreateCalls++
	m.LastCreated = bill
	if m.CreateFn != nil {
		return m.CreateFn(ctx, bill)
	}
	bill.ID = "mock-created-id"
	return bill, nil
}

func (m *mockBills) Update(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	m.UpdateCalls++
	m.LastUpdated = bill
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, bill)
	}
	return bill, nil
}

func (m *mockBills) Upload(ctx context.Context, fileName string, content io.Reader) (store.Attachment, error) {
	m.UploadCalls++
	if m.UploadFn != nil {
		return m.UploadFn(ctx, fileName, content)
	}
	return store.Attachment{
		BillID:   "mock-bill-id",
		FileURL:  "https://test.storage.tld/" + fileName,
		FileName: fileName,
	}, nil
}
