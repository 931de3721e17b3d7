package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/mroussel/frais/internal/domain"
)

// billsResource implements BillsResource over a shared httpStore.
type billsResource struct {
	s *httpStore
}

func (r *billsResource) List(ctx context.Context) ([]domain.Bill, error) {
	var bills []domain.Bill
	if err := r.s.doJSON(ctx, http.MethodGet, "/bills", nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billsResource) Create(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	var created domain.Bill
	if err := r.s.doJSON(ctx, http.MethodPost, "/bills", bill, &created); err != nil {
		return domain.Bill{}, err
	}
	return created, nil
}

func (r *billsResource) Update(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	var updated domain.Bill
	path := "/bills/" + bill.ID
	if err := r.s.doJSON(ctx, http.MethodPatch, path, bill, &updated); err != nil {
		return domain.Bill{}, err
	}
	return updated, nil
}

func (r *billsResource) Upload(ctx context.Context, fileName string, content io.Reader) (Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return Attachment{}, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return Attachment{}, fmt.Errorf("copying file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Attachment{}, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.s.baseURL+"/bills", &buf)
	if err != nil {
		return Attachment{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var att Attachment
	if err := r.s.do(req, &att); err != nil {
		return Attachment{}, err
	}
	if att.FileName == "" {
		att.FileName = fileName
	}
	return att, nil
}
