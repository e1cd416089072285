package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
vehicle:
  endpoint: https://telemetry.example.com
  token: tok-123
  vin: 5YJ3000000NEXUS01
poll:
  interval: 30s
store:
  driver: memory
  namespace: fleet.1
ops:
  address: ":9100"
telemetry:
  enabled: true
reporting:
  webhook: https://hooks.example.com/errors
`)

	cfg, err := LoadConfig(WithConfigPath(path))
	require.NoError(t, err)

	assert.Equal(t, "https://telemetry.example.com", cfg.Vehicle.Endpoint)
	assert.Equal(t, "tok-123", cfg.Vehicle.Token)
	assert.Equal(t, "5YJ3000000NEXUS01", cfg.Vehicle.VIN)
	assert.Equal(t, 30*time.Second, cfg.GetPollInterval())
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "fleet.1", cfg.Store.Namespace)
	assert.Equal(t, ":9100", cfg.Ops.Address)
	assert.True(t, cfg.Telemetry.Enabled)
	require.NotNil(t, cfg.Reporting)
	assert.Equal(t, "https://hooks.example.com/errors", cfg.Reporting.Webhook)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
vehicle:
  endpoint: http://localhost:8080
  token: tok
  vin: vin-1
`)

	cfg, err := LoadConfig(WithConfigPath(path))
	require.NoError(t, err)

	assert.Equal(t, DefaultPollInterval, cfg.GetPollInterval())
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, DefaultStorePath, cfg.Store.Path)
	assert.Equal(t, DefaultNamespace, cfg.Store.Namespace)
	assert.Equal(t, DefaultOpsAddress, cfg.Ops.Address)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Nil(t, cfg.Reporting)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing endpoint",
			content: `
vehicle:
  token: tok
  vin: vin-1
`,
			wantErr: "vehicle.endpoint is required",
		},
		{
			name: "bad endpoint URL",
			content: `
vehicle:
  endpoint: "not a url"
  token: tok
  vin: vin-1
`,
			wantErr: "not a valid URL",
		},
		{
			name: "non-http scheme",
			content: `
vehicle:
  endpoint: ftp://telemetry.example.com
  token: tok
  vin: vin-1
`,
			wantErr: "must use http or https",
		},
		{
			name: "missing token",
			content: `
vehicle:
  endpoint: https://telemetry.example.com
  vin: vin-1
`,
			wantErr: "vehicle.token is required",
		},
		{
			name: "missing vin",
			content: `
vehicle:
  endpoint: https://telemetry.example.com
  token: tok
`,
			wantErr: "vehicle.vin is required",
		},
		{
			name: "unparseable interval",
			content: `
vehicle:
  endpoint: https://telemetry.example.com
  token: tok
  vin: vin-1
poll:
  interval: sixty seconds
`,
			wantErr: "not a valid duration",
		},
		{
			name: "interval too short",
			content: `
vehicle:
  endpoint: https://telemetry.example.com
  token: tok
  vin: vin-1
poll:
  interval: 200ms
`,
			wantErr: "must be at least 1s",
		},
		{
			name: "unknown store driver",
			content: `
vehicle:
  endpoint: https://telemetry.example.com
  token: tok
  vin: vin-1
store:
  driver: postgres
`,
			wantErr: "store.driver must be",
		},
		{
			name: "reporting without webhook",
			content: `
vehicle:
  endpoint: https://telemetry.example.com
  token: tok
  vin: vin-1
reporting: {}
`,
			wantErr: "reporting.webhook is required",
		},
		{
			name:    "malformed yaml",
			content: "vehicle: [",
			wantErr: "failed to parse YAML config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfigFile(t, tt.content)
			_, err := LoadConfig(WithConfigPath(path))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_PathHandling(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(WithConfigPath(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})

	t.Run("no options", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})

	t.Run("nonexistent file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to evaluate symlinks")
	})

	t.Run("symlink resolved", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		target := filepath.Join(dir, "real.yaml")
		require.NoError(t, os.WriteFile(target, []byte(`
vehicle:
  endpoint: https://telemetry.example.com
  token: tok
  vin: vin-1
`), 0o600))
		link := filepath.Join(dir, "link.yaml")
		require.NoError(t, os.Symlink(target, link))

		cfg, err := LoadConfig(WithConfigPath(link))
		require.NoError(t, err)
		assert.Equal(t, "vin-1", cfg.Vehicle.VIN)
	})
}
