package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, env := range []string{EnvDisplayDevice, EnvInputGlob, EnvDataDir, EnvListenAddr, EnvTickInterval, EnvLogLevel, EnvDebug, EnvDevMode, EnvMaxUpload} {
		t.Setenv(env, "")
	}

	cfg, err := FromEnv(SimulatorListenAddr)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "/dev/fb0", cfg.DisplayDevice)
	require.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	require.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)

	cfg, err = cfg.Resolve()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/var/lib/inkpoint", "settings.yaml"), cfg.SettingsPath)
	require.Equal(t, filepath.Join("/var/lib/inkpoint", "recent.db"), cfg.RecentDBPath)
	require.Equal(t, filepath.Join("/var/lib/inkpoint", "books"), cfg.LibraryDir)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvListenAddr, "127.0.0.1:9000")
	t.Setenv(EnvTickInterval, "100ms")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvDataDir, "/tmp/ink")
	t.Setenv(EnvMaxUpload, "20 MiB")

	cfg, err := FromEnv(DeviceListenAddr)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	require.Equal(t, 100*time.Millisecond, cfg.TickInterval)
	require.True(t, cfg.Debug)
	require.Equal(t, int64(20<<20), cfg.MaxUploadBytes)

	cfg, err = cfg.Resolve()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, filepath.Join("/tmp/ink", "books"), cfg.LibraryDir)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv(EnvDevMode, "sometimes")
	_, err := FromEnv(DeviceListenAddr)
	require.ErrorContains(t, err, EnvDevMode)

	t.Setenv(EnvDevMode, "")
	t.Setenv(EnvTickInterval, "fast")
	_, err = FromEnv(DeviceListenAddr)
	require.ErrorContains(t, err, EnvTickInterval)

	t.Setenv(EnvTickInterval, "")
	t.Setenv(EnvMaxUpload, "lots")
	_, err = FromEnv(DeviceListenAddr)
	require.ErrorContains(t, err, EnvMaxUpload)
}

func TestResolveValidates(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*Config){
		"listen":  func(c *Config) { c.ListenAddr = "nowhere" },
		"tick":    func(c *Config) { c.TickInterval = time.Millisecond },
		"level":   func(c *Config) { c.LogLevel = "loud" },
		"display": func(c *Config) { c.DisplayDevice = "" },
		"upload":  func(c *Config) { c.MaxUploadBytes = 0 },
	}
	for name, mutate := range cases {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := Default(DeviceListenAddr)
			mutate(&cfg)
			_, err := cfg.Resolve()
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}
