package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/depview/depview/pkg/cache"
)

func TestCacheClearCommand(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := fc.Set(ctx, "pypi:flask", []byte(`{"version":"3.0.0"}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := fc.Set(ctx, "npm:express", []byte(`{"version":"4.19.2"}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	cmd := newCacheClearCmd(&Config{CacheDir: dir})
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	_, hit, _ := fc.Get(ctx, "pypi:flask")
	if hit {
		t.Error("expected miss after clear")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty, found %d entries", len(entries))
	}
}

func TestCacheClearCommandMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	cmd := newCacheClearCmd(&Config{CacheDir: dir})
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear on missing dir: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("missing cache dir should not be created by clear")
	}
}
