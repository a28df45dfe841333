package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.Equal(t, "https://apitest.authorize.net/xml/v1/request.api", cfg.Gateway.SandboxURL)
	assert.Equal(t, "https://api.authorize.net/xml/v1/request.api", cfg.Gateway.ProductionURL)
	assert.Equal(t, 30*time.Second, cfg.Gateway.RequestTimeout)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "merchant-pos", cfg.JWT.Issuer)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
  mode: "release"
gateway:
  sandbox_url: "https://sandbox.example.com/api"
  production_url: "https://live.example.com/api"
  request_timeout: "10s"
jwt:
  secret: "file-secret"
  expiry: "1h"
log:
  level: "warn"
  pretty: true
`)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "https://sandbox.example.com/api", cfg.Gateway.SandboxURL)
	assert.Equal(t, "https://live.example.com/api", cfg.Gateway.ProductionURL)
	assert.Equal(t, 10*time.Second, cfg.Gateway.RequestTimeout)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)

	// Unspecified keys keep defaults.
	assert.Equal(t, "localhost", cfg.Redis.Host)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("POS_SERVER_PORT", "7070")
	t.Setenv("POS_GATEWAY_REQUEST_TIMEOUT", "5s")
	t.Setenv("POS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Gateway.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestGatewayConfig_EndpointFor(t *testing.T) {
	g := GatewayConfig{
		SandboxURL:    "https://sandbox.example.com",
		ProductionURL: "https://live.example.com",
	}

	assert.Equal(t, "https://live.example.com", g.EndpointFor("production"))
	assert.Equal(t, "https://sandbox.example.com", g.EndpointFor("sandbox"))
	// Anything unrecognized stays on sandbox.
	assert.Equal(t, "https://sandbox.example.com", g.EndpointFor(""))
}
