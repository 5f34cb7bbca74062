package source

import (
	"context"

	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/httputil"
)

// HTTP fetches a dataset from a URL. Transient failures are retried by the
// underlying client.
type HTTP struct {
	url    string
	client *httputil.Client
}

// NewHTTP returns a source for url. A nil client gets the defaults.
func NewHTTP(url string, client *httputil.Client) (*HTTP, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}
	if client == nil {
		client = httputil.NewClient()
	}
	return &HTTP{url: url, client: client}, nil
}

func (h *HTTP) Kind() string     { return "http" }
func (h *HTTP) Location() string { return h.url }

func (h *HTTP) Fetch(ctx context.Context) ([]byte, error) {
	return h.client.Get(ctx, h.url)
}
