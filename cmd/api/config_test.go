package main

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecontest/internal/platform/rawg"
	"gamecontest/internal/search"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RAWG_API_KEY", "key")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, search.DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, search.DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, rawg.DefaultBaseURL, cfg.Catalog.BaseURL)
	assert.Equal(t, rawg.DefaultTimeout, cfg.Catalog.Timeout)
	assert.Equal(t, 5, cfg.Catalog.RPS)
	assert.Equal(t, "key", cfg.Catalog.APIKey)
	assert.Empty(t, cfg.RedisURL)
	assert.Nil(t, cfg.CORSOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RAWG_API_KEY", "key")
	t.Setenv("SEARCH_CACHE_TTL", "90m")
	t.Setenv("SEARCH_CACHE_SIZE", "64")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.10/32"),
	}, cfg.TrustedProxies)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RAWG_API_KEY", "")
	t.Setenv("RAWG_TIMEOUT", "soon")
	t.Setenv("TRUSTED_PROXIES", "proxy.internal")

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "RAWG_API_KEY")
	assert.Contains(t, err.Error(), "RAWG_TIMEOUT")
	assert.Contains(t, err.Error(), "TRUSTED_PROXIES")
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("JWT_SECRET=from_file\nRAWG_RPS=9\n"), 0o644))

	t.Setenv("JWT_SECRET", "from_env")
	t.Setenv("RAWG_RPS", "")
	os.Unsetenv("RAWG_RPS")

	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	loadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("JWT_SECRET"))
	assert.Equal(t, "9", os.Getenv("RAWG_RPS"))
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://***@db:5432/gamecontest", redactDSN("postgres://user:pw@db:5432/gamecontest"))
	assert.Equal(t, "not a dsn", redactDSN("not a dsn"))
}
