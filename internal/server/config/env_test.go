package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	origDotenv := dotenvFiles
	dotenvFiles = nil
	t.Cleanup(func() { dotenvFiles = origDotenv })

	t.Setenv(EnvPrefix+"GRPC_ADDR", ":7000")
	t.Setenv(EnvPrefix+"CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv(EnvPrefix+"S3_BUCKET", "pics")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":7000", c.EndpointAddrGRPC)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSAllowedOrigins)
	assert.Equal(t, "pics", c.S3Bucket)
	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	const key = EnvPrefix + "LOG_LEVEL"
	require.Empty(t, os.Getenv(key))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=debug\n"), 0o600))

	origDotenv := dotenvFiles
	dotenvFiles = []string{path, filepath.Join(t.TempDir(), "missing.env")}
	t.Cleanup(func() { dotenvFiles = origDotenv })

	c := &Config{LogLevel: "info"}
	parseEnv(c)

	assert.Equal(t, "debug", c.LogLevel)
}
