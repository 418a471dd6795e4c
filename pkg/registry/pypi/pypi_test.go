package pypi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/depview/depview/pkg/cache"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Flask", "flask"},
		{"typing_extensions", "typing-extensions"},
		{"ruamel.yaml", "ruamel-yaml"},
		{" requests ", "requests"},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetchLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flask/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"info":{"name":"Flask","version":"3.0.3","summary":"A web framework","home_page":"https://flask.palletsprojects.com"}}`))
	}))
	defer server.Close()

	client := NewClient(cache.NewNullCache(), time.Hour)
	client.baseURL = server.URL

	info, err := client.FetchLatest(context.Background(), "Flask", false)
	if err != nil {
		t.Fatalf("FetchLatest() error: %v", err)
	}
	if info.Name != "flask" {
		t.Errorf("Name = %q, want flask", info.Name)
	}
	if info.Version != "3.0.3" {
		t.Errorf("Version = %q, want 3.0.3", info.Version)
	}
}
