// Package config resolves the process configuration from defaults, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
)

const (
	EnvDisplayDevice = "INKPOINT_DISPLAY"
	EnvInputGlob     = "INKPOINT_INPUT"
	EnvDataDir       = "INKPOINT_DATA_DIR"
	EnvListenAddr    = "INKPOINT_LISTEN"
	EnvTickInterval  = "INKPOINT_TICK"
	EnvLogLevel      = "INKPOINT_LOG_LEVEL"
	EnvDebug         = "INKPOINT_DEBUG"
	EnvDevMode       = "INKPOINT_DEV"
	EnvMaxUpload     = "INKPOINT_MAX_UPLOAD"
)

// Listen address defaults per binary.
const (
	DeviceListenAddr    = ":80"
	SimulatorListenAddr = ":8080"
)

// DefaultMaxUploadBytes bounds a single book upload.
const DefaultMaxUploadBytes = 512 << 20

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config contains everything the app needs to start.
//
// SettingsPath, RecentDBPath and LibraryDir default to files below DataDir
// when left empty.
type Config struct {
	DisplayDevice string        `validate:"required"`
	InputGlob     string        `validate:"required"`
	DataDir       string        `validate:"required"`
	SettingsPath  string        `validate:"required"`
	RecentDBPath  string        `validate:"required"`
	LibraryDir    string        `validate:"required"`
	ListenAddr    string        `validate:"hostname_port"`
	TickInterval  time.Duration `validate:"gte=10ms,lte=1s"`
	LogLevel      string        `validate:"oneof=trace debug info warn error"`
	Debug         bool
	DevMode       bool

	// MaxUploadBytes is the largest book the web API accepts.
	MaxUploadBytes int64 `validate:"gte=1"`
}

// Default returns the device defaults with the given listen address.
func Default(listenAddr string) Config {
	return Config{
		DisplayDevice: "/dev/fb0",
		InputGlob:     "/dev/input/event*",
		DataDir:       "/var/lib/inkpoint",
		ListenAddr:    listenAddr,
		TickInterval:  50 * time.Millisecond,
		LogLevel:      "info",

		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// FromEnv applies INKPOINT_* variables on top of Default(defaultListenAddr).
func FromEnv(defaultListenAddr string) (Config, error) {
	cfg := Default(defaultListenAddr)

	setString := func(env string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	setString(EnvDisplayDevice, &cfg.DisplayDevice)
	setString(EnvInputGlob, &cfg.InputGlob)
	setString(EnvDataDir, &cfg.DataDir)
	setString(EnvListenAddr, &cfg.ListenAddr)
	setString(EnvLogLevel, &cfg.LogLevel)

	if raw := os.Getenv(EnvTickInterval); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a duration (got %q): %w", EnvTickInterval, raw, err)
		}
		cfg.TickInterval = d
	}
	if raw := strings.TrimSpace(os.Getenv(EnvMaxUpload)); raw != "" {
		n, err := humanize.ParseBytes(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a size like 200MB (got %q): %w", EnvMaxUpload, raw, err)
		}
		if n > math.MaxInt64 {
			return Config{}, fmt.Errorf("%s is too large (got %q)", EnvMaxUpload, raw)
		}
		cfg.MaxUploadBytes = int64(n)
	}
	for env, dst := range map[string]*bool{EnvDebug: &cfg.Debug, EnvDevMode: &cfg.DevMode} {
		raw := os.Getenv(env)
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a boolean (got %q): %w", env, raw, err)
		}
		*dst = parsed
	}
	return cfg, nil
}

// Resolve fills derived paths and validates the result.
func (c Config) Resolve() (Config, error) {
	if c.SettingsPath == "" {
		c.SettingsPath = filepath.Join(c.DataDir, "settings.yaml")
	}
	if c.RecentDBPath == "" {
		c.RecentDBPath = filepath.Join(c.DataDir, "recent.db")
	}
	if c.LibraryDir == "" {
		c.LibraryDir = filepath.Join(c.DataDir, "books")
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.Debug && c.LogLevel == "info" {
		c.LogLevel = "debug"
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Validate checks c and names the first offending field.
func Validate(c Config) error {
	validatorOnce.Do(func() { validateInst = validator.New(validator.WithRequiredStructEnabled()) })
	err := validateInst.Struct(c)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return fmt.Errorf("%w: %s failed '%s'", ErrInvalid, ves[0].Field(), ves[0].Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
