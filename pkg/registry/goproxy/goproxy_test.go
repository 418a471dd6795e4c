package goproxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/depview/depview/pkg/cache"
)

func TestEscapePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"github.com/spf13/cobra", "github.com/spf13/cobra"},
		{"github.com/BurntSushi/toml", "github.com/!burnt!sushi/toml"},
		{"github.com/Masterminds/semver/v3", "github.com/!masterminds/semver/v3"},
	}
	for _, tt := range tests {
		if got := escapePath(tt.in); got != tt.want {
			t.Errorf("escapePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetchLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/github.com/!burnt!sushi/toml/@latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"Version":"v1.5.0","Time":"2025-01-02T03:04:05Z"}`))
	}))
	defer server.Close()

	client := NewClient(cache.NewNullCache(), time.Hour)
	client.baseURL = server.URL

	info, err := client.FetchLatest(context.Background(), "github.com/BurntSushi/toml", false)
	if err != nil {
		t.Fatalf("FetchLatest() error: %v", err)
	}
	if info.Path != "github.com/BurntSushi/toml" {
		t.Errorf("Path = %q", info.Path)
	}
	if info.Version != "v1.5.0" {
		t.Errorf("Version = %q, want v1.5.0", info.Version)
	}
}
