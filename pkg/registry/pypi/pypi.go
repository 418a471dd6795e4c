// Package pypi provides access to the PyPI package registry API.
package pypi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/depview/depview/pkg/cache"
	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/registry"
)

// PackageInfo holds metadata for a Python package from PyPI.
// Names follow PEP 503 normalization (lowercase, underscores to hyphens).
type PackageInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Summary  string `json:"summary,omitempty"`
	HomePage string `json:"home_page,omitempty"`
}

// Client provides access to the PyPI JSON API with caching and retries.
// All methods are safe for concurrent use.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a PyPI client backed by the given cache.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  registry.NewClient(backend, "pypi", cacheTTL, nil),
		baseURL: "https://pypi.org/pypi",
	}
}

// FetchLatest retrieves the latest published release of a package.
// The name is normalized per PEP 503 before the lookup. If refresh is
// true the cache is bypassed.
func (c *Client) FetchLatest(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = normalize(pkg)
	if err := errors.ValidatePackageName(pkg); err != nil {
		return nil, err
	}

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data struct {
		Info struct {
			Name     string `json:"name"`
			Version  string `json:"version"`
			Summary  string `json:"summary"`
			HomePage string `json:"home_page"`
		} `json:"info"`
	}
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &data); err != nil {
		return err
	}
	*info = PackageInfo{
		Name:     normalize(data.Info.Name),
		Version:  data.Info.Version,
		Summary:  data.Info.Summary,
		HomePage: data.Info.HomePage,
	}
	return nil
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "-", ".", "-").Replace(name)
}
