// Package source locates and fetches raw hierarchy datasets.
//
// A dataset location is one of:
//
//	data/nyt.json                                  local file
//	https://example.com/nyt.json                   HTTP(S) URL, fetched with retry
//	mongodb://localhost:27017/archive#datasets/nyt MongoDB document (collection/_id in the fragment)
//
// Every [Source] returns the dataset as JSON bytes, so callers can cache
// and hash them without knowing where they came from.
package source

import (
	"bytes"
	"context"
	"strings"

	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/httputil"
)

// Source fetches one dataset.
type Source interface {
	// Kind names the backend ("file", "http", "mongo").
	Kind() string
	// Location is the canonical location string, used as the cache key.
	Location() string
	// Fetch returns the dataset as JSON bytes.
	Fetch(ctx context.Context) ([]byte, error)
}

// Option configures sources created by [Open].
type Option func(*openOptions)

type openOptions struct {
	http *httputil.Client
}

// WithHTTPClient sets the client used by HTTP sources.
func WithHTTPClient(c *httputil.Client) Option {
	return func(o *openOptions) { o.http = c }
}

// Open picks a backend for location by its scheme.
func Open(location string, opts ...Option) (Source, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case location == "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset location cannot be empty")
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTP(location, o.http)
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		return ParseMongo(location)
	case strings.Contains(location, "://"):
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported dataset location %q", location)
	default:
		return NewFile(location), nil
	}
}

// Load fetches src and decodes the bytes into a RawRecord.
func Load(ctx context.Context, src Source) (hierarchy.RawRecord, []byte, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return hierarchy.RawRecord{}, nil, err
	}
	raw, err := Decode(data)
	if err != nil {
		return hierarchy.RawRecord{}, nil, err
	}
	return raw, data, nil
}

// Decode parses dataset bytes produced by any [Source].
func Decode(data []byte) (hierarchy.RawRecord, error) {
	return hierarchy.ReadJSON(bytes.NewReader(data))
}
