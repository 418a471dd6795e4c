package cli

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/depview/depview/pkg/errors"
)

// Config holds the resolved configuration for all commands.
type Config struct {
	CacheDir      string        `koanf:"cache_dir"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	NoCache       bool          `koanf:"no_cache"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	Format        string        `koanf:"format"`
	ServeAddr     string        `koanf:"serve_addr"`
}

const (
	defaultCacheTTL  = 24 * time.Hour
	defaultFormat    = "text"
	defaultServeAddr = "127.0.0.1:8377"
)

// findConfigFile finds the config file to use.
// Priority: explicit path > depview.yaml > depview.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"depview.yaml", "depview.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"cache_ttl":  defaultCacheTTL.String(),
		"format":     defaultFormat,
		"serve_addr": defaultServeAddr,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load config defaults")
	}

	// 2. Config file
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config file %s", path)
		}
	}

	// 3. Environment variables (DEPVIEW_ prefix)
	// Transform: DEPVIEW_CACHE_DIR -> cache_dir
	if err := k.Load(env.Provider("DEPVIEW_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DEPVIEW_"))
	}), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load env vars")
	}

	// 4. Flags (highest priority, only those explicitly set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal config")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	return &cfg, nil
}
