package npm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/depview/depview/pkg/cache"
)

func TestFetchLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/express/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"name":"express","version":"4.19.2","description":"Fast web framework"}`))
	}))
	defer server.Close()

	client := NewClient(cache.NewNullCache(), time.Hour)
	client.baseURL = server.URL

	info, err := client.FetchLatest(context.Background(), "express", false)
	if err != nil {
		t.Fatalf("FetchLatest() error: %v", err)
	}
	if info.Version != "4.19.2" {
		t.Errorf("Version = %q, want 4.19.2", info.Version)
	}
}

func TestFetchLatestScoped(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"name":"@types/node","version":"20.11.5"}`))
	}))
	defer server.Close()

	client := NewClient(cache.NewNullCache(), time.Hour)
	client.baseURL = server.URL

	if _, err := client.FetchLatest(context.Background(), "@types/node", false); err != nil {
		t.Fatalf("FetchLatest() error: %v", err)
	}
	if gotPath != "/@types%2Fnode/latest" {
		t.Errorf("request path = %q, want escaped scoped name", gotPath)
	}
}
