package ports

import (
	"context"

	"github.com/vault42/console/internal/core/domain"
)

// TokenProvider supplies the bearer token for outgoing requests.
type TokenProvider interface {
	Token() (string, bool)
}

// Request describes one call to the banking API.
type Request struct {
	Method string
	// Path is relative to the API base URL and may carry a query string.
	Path   string
	Body   any
	Header map[string]string
}

// Gateway is the single chokepoint for calls to the banking API.
type Gateway interface {
	// Do sends req and decodes the JSON response into out (which may be nil).
	Do(ctx context.Context, req Request, out any) error
	// Download returns the raw response body of a binary endpoint.
	Download(ctx context.Context, method, path string) ([]byte, error)
	// Upload posts a multipart form with a single file part named "file".
	Upload(ctx context.Context, path string, fields map[string]string, file domain.UploadFile, out any) error
	Ping(ctx context.Context) error
}
