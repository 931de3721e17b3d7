package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// httpStore implements Store against the backend's JSON API.
type httpStore struct {
	baseURL string
	token   TokenSource
	http    *http.Client
}

// NewHTTPStore creates a Store that talks to the backend at baseURL.
// token may be nil for a client that only logs in.
func NewHTTPStore(baseURL string, token TokenSource) Store {
	if token == nil {
		token = func(context.Context) string { return "" }
	}
	return &httpStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

func (s *httpStore) Bills() BillsResource {
	return &billsResource{s: s}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *httpStore) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	err := s.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &creds)
	if err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// doJSON issues a JSON request and decodes the response into out (unless nil).
// Non-2xx statuses become *APIError so the literal "Erreur <code>" text
// reaches the caller.
func (s *httpStore) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(req, out)
}

func (s *httpStore) do(req *http.Request, out any) error {
	if tok := s.token(req.Context()); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
