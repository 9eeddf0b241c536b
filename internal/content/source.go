package content

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"time"
)

// Source retrieves the raw JSON document of a resource.
type Source interface {
	Open(ctx context.Context, r Resource) (io.ReadCloser, error)
}

// DirSource reads resources from a data directory.
type DirSource struct {
	fsys fs.FS
}

func NewDirSource(fsys fs.FS) DirSource {
	return DirSource{fsys: fsys}
}

func (s DirSource) Open(ctx context.Context, r Resource) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(r.FileName())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.Path(), err)
	}

	return f, nil
}

// HTTPSource fetches resources relative to a deployed site.
type HTTPSource struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &HTTPSource{
		BaseURL: baseURL,
		client:  client,
	}
}

func (s *HTTPSource) Open(ctx context.Context, r Resource) (io.ReadCloser, error) {
	target, err := url.JoinPath(s.BaseURL, r.Path())
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", s.BaseURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()

		return nil, &StatusError{URL: target, Code: resp.StatusCode}
	}

	return resp.Body, nil
}
