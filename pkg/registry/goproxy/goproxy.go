// Package goproxy provides access to the Go module proxy API.
package goproxy

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/depview/depview/pkg/cache"
	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/registry"
)

// ModuleInfo holds metadata for a Go module from the module proxy.
type ModuleInfo struct {
	Path    string    `json:"path"`
	Version string    `json:"version"`
	Time    time.Time `json:"time,omitempty"`
}

// Client provides access to the Go module proxy with caching and retries.
// All methods are safe for concurrent use.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a Go module proxy client backed by the given cache.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  registry.NewClient(backend, "goproxy", cacheTTL, nil),
		baseURL: "https://proxy.golang.org",
	}
}

// FetchLatest retrieves the latest version of a module from the @latest
// endpoint. If refresh is true the cache is bypassed.
func (c *Client) FetchLatest(ctx context.Context, mod string, refresh bool) (*ModuleInfo, error) {
	if err := errors.ValidatePackageName(mod); err != nil {
		return nil, err
	}
	escaped := escapePath(mod)

	var info ModuleInfo
	err := c.Cached(ctx, mod, refresh, &info, func() error {
		var data struct {
			Version string    `json:"Version"`
			Time    time.Time `json:"Time"`
		}
		if err := c.Get(ctx, fmt.Sprintf("%s/%s/@latest", c.baseURL, escaped), &data); err != nil {
			return err
		}
		info = ModuleInfo{Path: mod, Version: data.Version, Time: data.Time}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// escapePath applies the module proxy case-encoding: uppercase letters
// become "!" followed by the lowercase letter.
func escapePath(mod string) string {
	var b strings.Builder
	for _, r := range mod {
		if unicode.IsUpper(r) {
			b.WriteByte('!')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
