// Package npm provides access to the npm registry API.
package npm

import (
	"context"
	"net/url"
	"time"

	"github.com/depview/depview/pkg/cache"
	"github.com/depview/depview/pkg/errors"
	"github.com/depview/depview/pkg/registry"
)

// PackageInfo holds metadata for an npm package.
type PackageInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
}

// Client provides access to the npm registry with caching and retries.
// All methods are safe for concurrent use.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates an npm registry client backed by the given cache.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  registry.NewClient(backend, "npm", cacheTTL, nil),
		baseURL: "https://registry.npmjs.org",
	}
}

// FetchLatest retrieves the latest published version of a package.
// Scoped names (@scope/name) are URL-escaped per the registry protocol.
// If refresh is true the cache is bypassed.
func (c *Client) FetchLatest(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
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
	// The /latest dist-tag endpoint returns the manifest of a single
	// version instead of the full package document.
	endpoint := c.baseURL + "/" + url.PathEscape(pkg) + "/latest"

	var data struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Description string `json:"description"`
		Homepage    string `json:"homepage"`
	}
	if err := c.Get(ctx, endpoint, &data); err != nil {
		return err
	}
	*info = PackageInfo{
		Name:        data.Name,
		Version:     data.Version,
		Description: data.Description,
		Homepage:    data.Homepage,
	}
	return nil
}
