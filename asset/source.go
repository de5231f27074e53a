// Package asset fetches and decodes remote music tracks and background images
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors
var (
	ErrNotFound = errors.New("asset not found")
	ErrDecode   = errors.New("asset decode failed")
	ErrNoSource = errors.New("no asset source configured")
)

// StatusError reports a non-200 HTTP response
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("asset %s: unexpected status %d", e.URL, e.Code)
}

// Is lets a 404 match ErrNotFound
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Source opens an asset by its storage path
type Source interface {
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)
}

// HTTPSource reads assets from a storage bucket base URL
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates a source with a bounded request timeout
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	u, err := url.JoinPath(s.BaseURL, storagePath)
	if err != nil {
		return nil, fmt.Errorf("asset url %q: %w", storagePath, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, URL: u}
	}
	return resp.Body, nil
}

// DirSource reads assets below a local directory
type DirSource struct {
	Root string
}

func (s DirSource) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean("/" + storagePath)
	f, err := os.Open(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", storagePath, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
